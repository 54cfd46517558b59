package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/amonks/setstats/config"
	"github.com/amonks/setstats/index"
	"github.com/amonks/setstats/subcmd"
)

func search(ctx context.Context, cfg config.Config, args []string) error {
	subcmd := subcmd.New("search", "search the index for a song")
	subcmd.SetArg("query", "string", "search query, matched against song titles and alternate spellings (required)")
	count := subcmd.Int("count", index.DefaultSearchLimit, "number of songs to return")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	query := strings.Join(subcmd.Args(), " ")

	service, err := newService(cfg)
	if err != nil {
		return err
	}
	if service.Index() == nil {
		return fmt.Errorf("no index built yet; run 'setstats build' first")
	}

	songs := service.Search(query, *count)
	if len(songs) == 0 {
		fmt.Printf("no results for '%s'\n", query)
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	header := []string{"title", "slug", "performances", "first", "last"}
	fmt.Fprintf(tw, strings.Join(header, "\t")+"\n")

	for _, song := range songs {
		first, last := "", ""
		if song.FirstPerformance != nil {
			first = song.FirstPerformance.Date
		}
		if song.LastPerformance != nil {
			last = song.LastPerformance.Date
		}
		fmt.Fprintf(tw, strings.Join([]string{
			song.Title, song.Slug,
			fmt.Sprintf("%d", song.TotalPerformances),
			first, last,
		}, "\t")+"\n")
	}

	tw.Flush()

	return nil
}
