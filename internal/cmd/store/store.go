// Package store parses record store command flags and runs the record
// store service.
package store

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/louisbranch/faceforge/internal/platform/config"
	"github.com/louisbranch/faceforge/internal/platform/otel"
	"github.com/louisbranch/faceforge/internal/recordstore/server"
	"github.com/louisbranch/faceforge/internal/recordstore/storage/sqlite"
	"github.com/louisbranch/faceforge/internal/telemetry"
)

// Config holds record store command configuration.
type Config struct {
	HTTPAddr      string `env:"FACEFORGE_STORE_HTTP_ADDR"      envDefault:"localhost:8091"`
	DBPath        string `env:"FACEFORGE_STORE_DB_PATH"        envDefault:"faceforge-store.db"`
	SessionSecret string `env:"FACEFORGE_STORE_SESSION_SECRET"`
	TokenIssuer   string `env:"FACEFORGE_STORE_TOKEN_ISSUER"`
}

// ParseConfig parses environment and flags into a Config. The session
// signing secret stays environment-only.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the record store server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "store")
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

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store database: %v", err)
		}
	}()

	tokens, err := server.NewTokenIssuer(cfg.SessionSecret, cfg.TokenIssuer)
	if err != nil {
		return err
	}

	srv := server.New(store, tokens, telemetry.NewEmitter(store))
	if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
		return fmt.Errorf("serve record store: %w", err)
	}
	return nil
}
