// setstats builds a searchable index of a band's live performances from
// setlist.fm and resolves shows to streamable recordings on
// archive.org.
//
// see config/sample_config.toml for configuration.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/amonks/setstats/config"
	"github.com/amonks/setstats/sigctx"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: setstats $cmd
valid $cmd are 'build', 'search', 'song', 'resolve', 'tracks', 'playlist', 'serve', 'sample-config'
for help: setstats $cmd -help
config is read from $SETSTATS_CONFIG, or ~/.config/setstats/config.toml
`)

func run() error {
	ctx := sigctx.New()

	cfg, err := config.Load(os.Getenv("SETSTATS_CONFIG"))
	if err != nil {
		return err
	}

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "build":
		return build(ctx, cfg, args)

	case "search":
		return search(ctx, cfg, args)

	case "song":
		return song(ctx, cfg, args)

	case "resolve":
		return resolve(ctx, cfg, args)

	case "tracks":
		return tracks(ctx, cfg, args)

	case "playlist":
		return playlistCmd(ctx, cfg, args)

	case "serve":
		return serve(ctx, cfg, args)

	case "sample-config":
		return sampleConfig(args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}
