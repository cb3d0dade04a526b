// Package editor parses editor command flags and runs the avatar editor
// service.
package editor

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/louisbranch/faceforge/internal/platform/config"
	"github.com/louisbranch/faceforge/internal/platform/otel"
	"github.com/louisbranch/faceforge/internal/web"
)

// Config holds editor command configuration.
type Config struct {
	HTTPAddr      string `env:"FACEFORGE_EDITOR_HTTP_ADDR"      envDefault:"localhost:8090"`
	StoreURL      string `env:"FACEFORGE_EDITOR_STORE_URL"`
	StoreIdentity string `env:"FACEFORGE_EDITOR_STORE_IDENTITY"`
	StorePassword string `env:"FACEFORGE_EDITOR_STORE_PASSWORD"`
}

// ParseConfig parses environment and flags into a Config. The store
// password stays environment-only so it never shows up in process lists.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.StoreURL, "store-url", cfg.StoreURL, "record store base URL (empty disables persistence)")
	fs.StringVar(&cfg.StoreIdentity, "store-identity", cfg.StoreIdentity, "record store identity handle")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the editor server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "editor")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr:      cfg.HTTPAddr,
		StoreURL:      cfg.StoreURL,
		StoreIdentity: cfg.StoreIdentity,
		StorePassword: cfg.StorePassword,
	})
	if err != nil {
		return fmt.Errorf("init editor server: %w", err)
	}

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve editor: %w", err)
	}
	return nil
}
