// Package server implements the record store HTTP service: bearer-token
// sessions and one JSON record per (did, collection, rkey) slot with
// update-only and create-only write paths.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/faceforge/internal/recordstore/storage"
	"github.com/louisbranch/faceforge/internal/telemetry"
)

// Storage is the persistence surface the server needs.
type Storage interface {
	storage.RecordStore
	storage.IdentityStore
}

// Server hosts the record store HTTP API.
type Server struct {
	store   Storage
	tokens  *TokenIssuer
	emitter *telemetry.Emitter
	httpSrv *http.Server
}

// New creates a record store server.
func New(store Storage, tokens *TokenIssuer, emitter *telemetry.Emitter) *Server {
	return &Server{store: store, tokens: tokens, emitter: emitter}
}

// Handler builds the HTTP handler for the record store API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /session", s.handleCreateSession)
	mux.HandleFunc("GET /records/{did}/{collection}/{rkey}", s.handleGetRecord)
	mux.HandleFunc("PUT /records/{did}/{collection}/{rkey}", s.handleUpdateRecord)
	mux.HandleFunc("POST /records/{did}/{collection}/{rkey}", s.handleCreateRecord)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()
	log.Printf("record store listening on %s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-errCh:
		return err
	}
}
