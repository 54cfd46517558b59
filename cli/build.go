package main

import (
	"context"
	"fmt"
	"time"

	"github.com/amonks/setstats/config"
	"github.com/amonks/setstats/subcmd"
	"github.com/amonks/setstats/yearsflag"
)

func build(ctx context.Context, cfg config.Config, args []string) error {
	subcmd := subcmd.New("build", "fetch setlists and build the song index\nthis makes paced requests to setlist.fm and can take a while")
	years := yearsflag.New(cfg.SetlistFM.Years...)
	subcmd.Var(years, "years", "comma-separated years to index")
	maxPages := subcmd.Int("max-pages", cfg.SetlistFM.MaxPages, "pages to fetch per year")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	cfg.SetlistFM.Years = years.List()
	cfg.SetlistFM.MaxPages = *maxPages

	service, err := newService(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	idx, err := service.BuildIndex(ctx)
	if err != nil {
		return fmt.Errorf("build error: %w", err)
	}

	fmt.Printf("indexed %d songs across %d shows in %s (build %s)\n",
		len(idx.Songs), idx.TotalShows, time.Since(start).Round(time.Second), idx.BuildID)
	return nil
}
