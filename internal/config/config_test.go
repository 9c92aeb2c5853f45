package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session != "default" || cfg.Layout != "rook@A1" || cfg.Empty != "-" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Persist || !cfg.Resume {
		t.Errorf("persist/resume defaults = %v/%v", cfg.Persist, cfg.Resume)
	}
}

func TestLoadReadsEnvAndFlags(t *testing.T) {
	t.Setenv("GRIDCHESS_SESSION", "env-session")
	t.Setenv("GRIDCHESS_PERSIST", "true")
	t.Setenv("GRIDCHESS_SETUP", "king@E1")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"-setup", "rook@H8", "-empty", "."})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session != "env-session" {
		t.Errorf("expected env session, got %q", cfg.Session)
	}
	if !cfg.Persist {
		t.Error("expected persist from env")
	}
	if cfg.Layout != "rook@H8" {
		t.Errorf("expected flag layout, got %q", cfg.Layout)
	}
	if cfg.Empty != "." {
		t.Errorf("expected flag marker, got %q", cfg.Empty)
	}
}

func TestLoadRejects(t *testing.T) {
	t.Setenv("GRIDCHESS_PERSIST", "maybe")
	if _, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil); err == nil {
		t.Error("invalid bool accepted")
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{Session: "s", Layout: "rook@Z9"}).Validate(); err == nil {
		t.Error("bad layout accepted")
	}
	if err := (Config{Layout: "rook@A1"}).Validate(); err == nil {
		t.Error("empty session accepted")
	}
	if err := (Config{Session: "s", Layout: "rook@A1"}).Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoadRequiresFlagSet(t *testing.T) {
	if _, err := Load(nil, nil); err == nil {
		t.Error("nil flag set accepted")
	}
}

func TestLoadSharedSkipsSessionFlags(t *testing.T) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := LoadShared(fs, []string{"-persist"}); err == nil {
		t.Error("-persist accepted by a shared-only loader")
	}

	fs = flag.NewFlagSet("render", flag.ContinueOnError)
	cfg, err := LoadShared(fs, []string{"-setup", "king@E4", "-kinds", "k.json"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout != "king@E4" || cfg.Kinds != "k.json" {
		t.Errorf("cfg = %+v", cfg)
	}
	for _, name := range []string{"persist", "resume", "otel"} {
		if fs.Lookup(name) != nil {
			t.Errorf("flag -%s registered", name)
		}
	}
}

func TestCatalog(t *testing.T) {
	cat, err := (Config{}).Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cat.Lookup("rook"); !ok {
		t.Error("built-in kinds missing")
	}

	path := filepath.Join(t.TempDir(), "kinds.json")
	kinds := `[{"name": "wazir", "base": "king", "stamp": "w", "directions": ["N", "E", "S", "W"]}]`
	if err := os.WriteFile(path, []byte(kinds), 0o600); err != nil {
		t.Fatal(err)
	}
	cat, err = (Config{Kinds: path}).Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cat.Lookup("wazir"); !ok {
		t.Error("kinds file not loaded")
	}

	if _, err := (Config{Kinds: filepath.Join(t.TempDir(), "missing.json")}).Catalog(); err == nil {
		t.Error("missing kinds file accepted")
	}
}
