package main

import (
	"context"
	"fmt"

	"github.com/amonks/setstats/config"
	"github.com/amonks/setstats/server"
	"github.com/amonks/setstats/subcmd"
)

func serve(ctx context.Context, cfg config.Config, args []string) error {
	subcmd := subcmd.New("serve", "run the http api")
	addr := subcmd.String("addr", cfg.Server.Addr, "listen address")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	service, err := newService(cfg)
	if err != nil {
		return err
	}

	srv := &server.Server{
		Index:        service,
		Resolver:     newResolver(cfg),
		Addr:         *addr,
		RebuildCheck: cfg.Server.RebuildCheck.Duration(),
	}
	return srv.Run(ctx)
}
