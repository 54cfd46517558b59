package main

import (
	"context"
	"fmt"
	"os"

	"github.com/amonks/setstats/config"
	"github.com/amonks/setstats/playlist"
	"github.com/amonks/setstats/subcmd"
)

func playlistCmd(ctx context.Context, cfg config.Config, args []string) error {
	subcmd := subcmd.New("playlist", "write an m3u8 playlist of a recording's audio tracks")
	subcmd.SetArg("identifier", "string", "archive.org identifier, as printed by 'setstats resolve' (required)")
	var (
		song = subcmd.String("song", "", "song title to match tracks against")
		out  = subcmd.String("o", "", "output file; stdout when empty")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	if len(subcmd.Args()) != 1 {
		subcmd.Usage()
		return fmt.Errorf("need exactly one identifier")
	}
	identifier := subcmd.Args()[0]

	tracks, _ := newResolver(cfg).FindSongTracks(ctx, identifier, *song)
	if len(tracks) == 0 {
		return fmt.Errorf("no audio tracks in '%s'", identifier)
	}

	rendered, err := playlist.Render(identifier, tracks)
	if err != nil {
		return err
	}

	if *out == "" {
		fmt.Print(rendered)
		return nil
	}
	if err := os.WriteFile(*out, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("error writing playlist to '%s': %w", *out, err)
	}
	fmt.Printf("wrote %d tracks to %s\n", len(tracks), *out)
	return nil
}
