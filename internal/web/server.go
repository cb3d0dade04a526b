// Package web hosts the avatar editor: a JSON API over one live avatar
// session plus an HTML debug view of the current configuration and the
// assembled hierarchy.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/faceforge/internal/avatar/gateway"
	"github.com/louisbranch/faceforge/internal/avatar/session"
	"github.com/louisbranch/faceforge/internal/recordstore"
)

// Config defines the inputs for the editor server.
type Config struct {
	HTTPAddr string
	// StoreURL is the record store base URL. Empty runs the editor
	// without persistence; save and load then fail.
	StoreURL      string
	StoreIdentity string
	StorePassword string
}

// Server hosts the editor HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewServer builds a configured editor server. When a store URL is set it
// authenticates against the record store up front so save and load are
// scoped to the right identity from the first request.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}

	var persister session.Persister
	identity := ""
	if strings.TrimSpace(config.StoreURL) != "" {
		client, err := recordstore.NewClient(config.StoreURL)
		if err != nil {
			return nil, fmt.Errorf("record store client: %w", err)
		}
		storeSession, err := client.CreateSession(ctx, config.StoreIdentity, config.StorePassword)
		if err != nil {
			return nil, fmt.Errorf("record store session: %w", err)
		}
		gw, err := gateway.New(client, gateway.Identity{DID: storeSession.DID})
		if err != nil {
			return nil, fmt.Errorf("avatar gateway: %w", err)
		}
		persister = gw
		identity = storeSession.DID
		log.Printf("editor persisting as %s", identity)
	} else {
		log.Printf("editor running without persistence")
	}

	palette, err := LoadPalette()
	if err != nil {
		return nil, err
	}

	handler := NewHandler(session.New(persister), palette, identity)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("editor server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("editor listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
