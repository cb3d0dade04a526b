package recordstore_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/louisbranch/faceforge/internal/recordstore"
	"github.com/louisbranch/faceforge/internal/recordstore/server"
	"github.com/louisbranch/faceforge/internal/recordstore/storage/sqlite"
	"github.com/louisbranch/faceforge/internal/telemetry"
)

func newStoreServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	tokens, err := server.NewTokenIssuer("client-test-secret", "")
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}
	srv := httptest.NewServer(server.New(store, tokens, telemetry.NewEmitter(store)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestClientSessionAndRecordRoundTrip(t *testing.T) {
	srv := newStoreServer(t)
	ctx := context.Background()

	client, err := recordstore.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	session, err := client.CreateSession(ctx, "alice", "hunter2")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if client.DID() != session.DID {
		t.Fatalf("expected client to remember session did")
	}

	collection, rkey := "space.faceforge.avatar", "self"
	value := []byte(`{"headShape":"square","hasBlush":false}`)

	err = client.UpdateRecord(ctx, session.DID, collection, rkey, value)
	if !errors.Is(err, recordstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating empty slot, got %v", err)
	}
	if err := client.CreateRecord(ctx, session.DID, collection, rkey, value); err != nil {
		t.Fatalf("create record: %v", err)
	}
	if err := client.CreateRecord(ctx, session.DID, collection, rkey, value); !errors.Is(err, recordstore.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := client.GetRecord(ctx, session.DID, collection, rkey)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if string(got) != string(value) {
		t.Fatalf("expected stored value %s, got %s", value, got)
	}
}

func TestClientGetMissingRecord(t *testing.T) {
	srv := newStoreServer(t)
	client, err := recordstore.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	session, err := client.CreateSession(context.Background(), "alice", "hunter2")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	_, err = client.GetRecord(context.Background(), session.DID, "space.faceforge.avatar", "self")
	if !errors.Is(err, recordstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientWriteWithoutSessionIsUnauthenticated(t *testing.T) {
	srv := newStoreServer(t)
	client, err := recordstore.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.CreateRecord(context.Background(), "did:faceforge:ghost", "space.faceforge.avatar", "self", []byte(`{}`))
	if !errors.Is(err, recordstore.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := recordstore.NewClient(""); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}
