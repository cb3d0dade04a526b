package editor

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("editor", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8090" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.StoreURL != "" {
		t.Fatalf("expected persistence off by default, got %q", cfg.StoreURL)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("FACEFORGE_EDITOR_STORE_URL", "http://env-store")
	t.Setenv("FACEFORGE_EDITOR_STORE_PASSWORD", "env-password")

	fs := flag.NewFlagSet("editor", flag.ContinueOnError)
	args := []string{"-http-addr", "flag-http", "-store-identity", "alice"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-http" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.StoreURL != "http://env-store" {
		t.Fatalf("expected env store url, got %q", cfg.StoreURL)
	}
	if cfg.StoreIdentity != "alice" {
		t.Fatalf("expected flag identity, got %q", cfg.StoreIdentity)
	}
	if cfg.StorePassword != "env-password" {
		t.Fatalf("expected env password, got %q", cfg.StorePassword)
	}
}
