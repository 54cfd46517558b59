package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/amonks/setstats/config"
	"github.com/amonks/setstats/subcmd"
)

func song(ctx context.Context, cfg config.Config, args []string) error {
	subcmd := subcmd.New("song", "show every known performance of one song")
	subcmd.SetArg("slug", "string", "song slug, as printed by 'setstats search' (required)")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	if len(subcmd.Args()) != 1 {
		subcmd.Usage()
		return fmt.Errorf("need exactly one slug")
	}
	slug := subcmd.Args()[0]

	service, err := newService(cfg)
	if err != nil {
		return err
	}
	if service.Index() == nil {
		return fmt.Errorf("no index built yet; run 'setstats build' first")
	}

	entry := service.SongDetails(slug)
	if entry == nil {
		return fmt.Errorf("no song '%s'", slug)
	}

	fmt.Printf("%s (%d performances)\n", entry.Title, entry.TotalPerformances)
	if len(entry.AltTitles) > 0 {
		fmt.Printf("also listed as: %s\n", strings.Join(entry.AltTitles, ", "))
	}
	if entry.FirstPerformance != nil && entry.LastPerformance != nil {
		fmt.Printf("first %s, last %s\n", entry.FirstPerformance.Date, entry.LastPerformance.Date)
	}
	fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "date\tvenue\tcity\tera\n")
	for _, show := range entry.Shows {
		fmt.Fprintf(tw, strings.Join([]string{
			show.Date, show.Venue.Name, show.Venue.City, show.Era,
		}, "\t")+"\n")
	}
	tw.Flush()

	return nil
}
