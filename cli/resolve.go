package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/amonks/setstats/config"
	"github.com/amonks/setstats/resolver"
	"github.com/amonks/setstats/subcmd"
)

func resolve(ctx context.Context, cfg config.Config, args []string) error {
	subcmd := subcmd.New("resolve", "find archive.org recordings of a show")
	var (
		date       = subcmd.String("date", "", "show date, YYYY-MM-DD (required unless -identifier)")
		venue      = subcmd.String("venue", "", "venue name hint")
		city       = subcmd.String("city", "", "city hint")
		state      = subcmd.String("state", "", "state hint, like NY")
		identifier = subcmd.String("identifier", "", "skip searching and use this archive identifier")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	if *date == "" && *identifier == "" {
		subcmd.Usage()
		return fmt.Errorf("need -date or -identifier")
	}

	result, err := newResolver(cfg).Resolve(ctx, resolver.ShowQuery{
		Date:       *date,
		Venue:      *venue,
		City:       *city,
		State:      *state,
		Identifier: *identifier,
	})
	if err != nil {
		return err
	}

	if result.BestIdentifier == "" {
		fmt.Printf("no recordings found for %s\n", *date)
		return nil
	}

	if len(result.Candidates) > 0 {
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "score\tidentifier\tsource\ttitle\n")
		for _, candidate := range result.Candidates {
			fmt.Fprintf(tw, strings.Join([]string{
				fmt.Sprintf("%d", candidate.Score),
				candidate.Identifier,
				candidate.Source,
				candidate.Title,
			}, "\t")+"\n")
		}
		tw.Flush()
		fmt.Println()
	}

	fmt.Printf("best: %s (%d audio tracks)\n", result.BestIdentifier, len(result.Tracks))
	return nil
}
