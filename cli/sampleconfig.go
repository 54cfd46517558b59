package main

import (
	"fmt"

	"github.com/amonks/setstats/config"
	"github.com/amonks/setstats/subcmd"
)

func sampleConfig(args []string) error {
	subcmd := subcmd.New("sample-config", "write an annotated sample config file")
	path := subcmd.String("o", config.DefaultConfigPath(), "where to write the sample")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	if err := config.CreateSample(*path); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", *path)
	return nil
}
