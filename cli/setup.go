package main

import (
	"github.com/amonks/setstats/archive"
	"github.com/amonks/setstats/config"
	"github.com/amonks/setstats/db"
	"github.com/amonks/setstats/index"
	"github.com/amonks/setstats/indexfile"
	"github.com/amonks/setstats/limiter"
	"github.com/amonks/setstats/resolver"
	"github.com/amonks/setstats/setlistfm"
	"github.com/amonks/setstats/setlistweb"
)

// newStore picks the index store: sqlite when a db path is configured,
// otherwise the JSON file store.
func newStore(cfg config.Config) (index.Store, error) {
	if cfg.Index.DBPath != "" {
		return db.Open(cfg.Index.DBPath)
	}
	return indexfile.New(cfg.IndexFilePath()), nil
}

// newBuilder picks the setlist source: the REST API when a key is
// configured, otherwise the HTML scraper.
func newBuilder(cfg config.Config) *index.Builder {
	var source index.SetlistSource
	if cfg.SetlistFM.APIKey != "" {
		source = setlistfm.New(cfg.SetlistFM.APIKey)
	} else {
		source = setlistweb.New(cfg.Act.WebSlug)
	}

	return &index.Builder{
		Source:   source,
		ActID:    cfg.Act.MBID,
		Years:    cfg.SetlistFM.Years,
		MaxPages: cfg.SetlistFM.MaxPages,
		Pacer: limiter.Pacer{
			PageDelay: cfg.SetlistFM.PageDelay.Duration(),
			YearDelay: cfg.SetlistFM.YearDelay.Duration(),
			Cooldown:  cfg.SetlistFM.Cooldown.Duration(),
		},
	}
}

func newService(cfg config.Config) (*index.Service, error) {
	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	service := index.NewService(newBuilder(cfg), store, cfg.MaxAge())
	if err := service.LoadStored(); err != nil {
		return nil, err
	}
	return service, nil
}

func newResolver(cfg config.Config) *resolver.Resolver {
	return &resolver.Resolver{
		Archive:      archive.New(cfg.CacheDir()),
		Collection:   cfg.Act.Collection,
		Shortcode:    cfg.Act.Shortcode,
		OverlapRatio: cfg.Archive.OverlapRatio,
	}
}
