// GridChess - move named pieces around an 8x8 board from the console
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hailam/gridchess/internal/command"
	"github.com/hailam/gridchess/internal/config"
	"github.com/hailam/gridchess/internal/rules"
	"github.com/hailam/gridchess/internal/session"
	"github.com/hailam/gridchess/internal/storage"
	"github.com/hailam/gridchess/internal/telemetry"
)

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if err := run(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	shutdown, err := telemetry.Setup(ctx, "gridchess", cfg.OTelEndpoint)
	if err != nil {
		log.Printf("Warning: tracing disabled: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Warning: Failed to flush traces: %v", err)
		}
	}()

	opts := session.Options{ID: cfg.Session, Empty: cfg.Empty}
	var loader session.Loader
	if cfg.Persist {
		store, err := storage.Open(cfg.DataDir)
		if err != nil {
			log.Printf("Warning: Failed to initialize storage: %v", err)
		} else {
			defer store.Close()
			opts.Store = store
			loader = store
		}
	}

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}
	b, resumed, err := session.LoadBoard(loader, cat, cfg.Session, cfg.Layout, cfg.Resume)
	if err != nil {
		return err
	}
	if resumed {
		log.Printf("Resumed session %s", cfg.Session)
	}

	s := session.New(command.NewInterpreter(b, rules.NewEngine()), os.Stdout, os.Stderr, opts)
	if err := s.Run(ctx, os.Stdin); err != nil {
		log.Printf("Input closed: %v", err)
	}
	return nil
}
