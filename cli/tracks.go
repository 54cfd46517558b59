package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/amonks/setstats/config"
	"github.com/amonks/setstats/subcmd"
	"github.com/dustin/go-humanize"
)

func tracks(ctx context.Context, cfg config.Config, args []string) error {
	subcmd := subcmd.New("tracks", "list a recording's audio tracks, optionally narrowed to one song")
	subcmd.SetArg("identifier", "string", "archive.org identifier, as printed by 'setstats resolve' (required)")
	song := subcmd.String("song", "", "song title to match tracks against")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	if len(subcmd.Args()) != 1 {
		subcmd.Usage()
		return fmt.Errorf("need exactly one identifier")
	}
	identifier := subcmd.Args()[0]

	found := printTracks(ctx, cfg, identifier, *song)
	if *song != "" && !found {
		fmt.Printf("\nno track matched '%s'; listed the whole recording instead\n", *song)
	}
	return nil
}

func printTracks(ctx context.Context, cfg config.Config, identifier, song string) bool {
	trackList, found := newResolver(cfg).FindSongTracks(ctx, identifier, song)
	if len(trackList) == 0 {
		fmt.Printf("no audio tracks in '%s'\n", identifier)
		return found
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "title\tformat\tlength\tsize\n")
	for _, track := range trackList {
		length := ""
		if track.Duration > 0 {
			length = fmt.Sprintf("%d:%02d", track.Duration/60, track.Duration%60)
		}
		size := ""
		if track.Size > 0 {
			size = humanize.Bytes(uint64(track.Size))
		}
		fmt.Fprintf(tw, strings.Join([]string{
			track.Title, track.Format, length, size,
		}, "\t")+"\n")
	}
	tw.Flush()

	return found
}
