// Package server exposes the index and resolver over an HTTP JSON API.
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/amonks/setstats/index"
	"github.com/amonks/setstats/resolver"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Index    *index.Service
	Resolver *resolver.Resolver
	Addr     string

	// RebuildCheck is how often the background loop asks the index
	// service whether its index has gone stale; zero disables the loop.
	RebuildCheck time.Duration
}

// Run serves until ctx is canceled, then shuts down cleanly. When
// RebuildCheck is set, a background loop rebuilds the index whenever it
// goes stale.
func (s *Server) Run(ctx context.Context) error {
	srv := http.Server{Addr: s.Addr, Handler: s.Handler()}

	errs := make(chan error)
	go func() { errs <- srv.ListenAndServe() }()

	group, ctx := errgroup.WithContext(ctx)
	if s.RebuildCheck > 0 {
		group.Go(func() error { return s.rebuildLoop(ctx) })
	}

	log.Printf("serving on %s", s.Addr)
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return err
		}
		<-errs
		return group.Wait()
	}
}

// rebuildLoop periodically rebuilds a stale index. A failed rebuild is
// logged and retried at the next tick; the last good index stays
// serving throughout.
func (s *Server) rebuildLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.RebuildCheck)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !s.Index.NeedsRebuild() {
				continue
			}
			log.Printf("index is stale; rebuilding")
			if _, err := s.Index.BuildIndex(ctx); err != nil {
				log.Printf("error rebuilding index: %s", err)
			}
		}
	}
}
