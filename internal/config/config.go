// Package config loads runtime settings from the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/hailam/gridchess/internal/board"
)

// Config holds the settings shared by the gridchess binaries.
type Config struct {
	DataDir      string `env:"GRIDCHESS_DATA_DIR"`
	Session      string `env:"GRIDCHESS_SESSION" envDefault:"default"`
	Persist      bool   `env:"GRIDCHESS_PERSIST" envDefault:"false"`
	Resume       bool   `env:"GRIDCHESS_RESUME" envDefault:"true"`
	Layout       string `env:"GRIDCHESS_SETUP" envDefault:"rook@A1"`
	Empty        string `env:"GRIDCHESS_EMPTY" envDefault:"-"`
	Kinds        string `env:"GRIDCHESS_KINDS"`
	OTelEndpoint string `env:"GRIDCHESS_OTEL_ENDPOINT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// RegisterFlags binds the flags every binary understands, using the
// current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.DataDir, "data", c.DataDir, "data directory (default: platform data dir)")
	fs.StringVar(&c.Session, "session", c.Session, "session id used for persistence")
	fs.StringVar(&c.Layout, "setup", c.Layout, "initial layout, e.g. rook@A1,wk:king/white@E1")
	fs.StringVar(&c.Empty, "empty", c.Empty, "marker drawn on empty squares")
	fs.StringVar(&c.Kinds, "kinds", c.Kinds, "JSON file of extra piece kinds")
}

// RegisterSessionFlags binds the flags only the interactive session uses.
func (c *Config) RegisterSessionFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.Persist, "persist", c.Persist, "save the board and move log after every move")
	fs.BoolVar(&c.Resume, "resume", c.Resume, "continue a stored session instead of the layout")
	fs.StringVar(&c.OTelEndpoint, "otel", c.OTelEndpoint, "OTLP/HTTP trace endpoint (empty disables tracing)")
}

// Load reads env defaults then parses the session and shared flags from args.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	return load(fs, args, true)
}

// LoadShared is Load for tools that only take the shared flags.
func LoadShared(fs *flag.FlagSet, args []string) (Config, error) {
	return load(fs, args, false)
}

func load(fs *flag.FlagSet, args []string, session bool) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.RegisterFlags(fs)
	if session {
		cfg.RegisterSessionFlags(fs)
	}
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Catalog returns the built-in kinds plus those in the kinds file, if any.
func (c Config) Catalog() (*board.Catalog, error) {
	cat := board.DefaultCatalog()
	if c.Kinds == "" {
		return cat, nil
	}
	f, err := os.Open(c.Kinds)
	if err != nil {
		return nil, fmt.Errorf("kinds: %w", err)
	}
	defer f.Close()
	if err := cat.Load(f); err != nil {
		return nil, fmt.Errorf("kinds %s: %w", c.Kinds, err)
	}
	return cat, nil
}

// Validate checks the values that would otherwise fail later.
func (c Config) Validate() error {
	if c.Session == "" {
		return errors.New("session id is required")
	}
	if _, err := board.ParseLayout(c.Layout); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	return nil
}
