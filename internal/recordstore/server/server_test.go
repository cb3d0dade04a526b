package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/louisbranch/faceforge/internal/recordstore"
	"github.com/louisbranch/faceforge/internal/recordstore/storage/sqlite"
	"github.com/louisbranch/faceforge/internal/telemetry"
)

func newTestServer(t *testing.T) *httptest.Server {
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

	tokens, err := NewTokenIssuer("test-secret", "faceforge-store-test")
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}

	srv := httptest.NewServer(New(store, tokens, telemetry.NewEmitter(store)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func createSession(t *testing.T, srv *httptest.Server, identity, password string) recordstore.SessionResponse {
	t.Helper()
	body, _ := json.Marshal(recordstore.SessionRequest{Identity: identity, Password: password})
	resp, err := http.Post(srv.URL+"/session", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create session status %d", resp.StatusCode)
	}
	var session recordstore.SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return session
}

func doRecordRequest(t *testing.T, method, url, token string, value []byte) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if value != nil {
		envelope, _ := json.Marshal(map[string]json.RawMessage{"value": value})
		body = bytes.NewReader(envelope)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func TestSessionRegistersAndAuthenticates(t *testing.T) {
	srv := newTestServer(t)

	first := createSession(t, srv, "alice", "hunter2")
	if first.DID == "" || first.AccessToken == "" {
		t.Fatalf("expected did and token, got %+v", first)
	}

	second := createSession(t, srv, "alice", "hunter2")
	if second.DID != first.DID {
		t.Fatalf("expected stable did across sessions, got %q then %q", first.DID, second.DID)
	}

	body, _ := json.Marshal(recordstore.SessionRequest{Identity: "alice", Password: "wrong"})
	resp, err := http.Post(srv.URL+"/session", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("bad session request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", resp.StatusCode)
	}
}

func TestRecordWriteSemantics(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv, "alice", "hunter2")
	slot := srv.URL + "/records/" + session.DID + "/space.faceforge.avatar/self"
	payload := []byte(`{"headShape":"square"}`)

	// Update against an empty slot misses.
	resp := doRecordRequest(t, http.MethodPut, slot, session.AccessToken, payload)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 updating empty slot, got %d", resp.StatusCode)
	}

	// Create fills it.
	resp = doRecordRequest(t, http.MethodPost, slot, session.AccessToken, payload)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 creating record, got %d", resp.StatusCode)
	}

	// Second create conflicts.
	resp = doRecordRequest(t, http.MethodPost, slot, session.AccessToken, payload)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate create, got %d", resp.StatusCode)
	}

	// Update now succeeds.
	resp = doRecordRequest(t, http.MethodPut, slot, session.AccessToken, []byte(`{"headShape":"oval"}`))
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 updating record, got %d", resp.StatusCode)
	}

	// Read back without auth.
	resp = doRecordRequest(t, http.MethodGet, slot, "", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 reading record, got %d", resp.StatusCode)
	}
	var envelope struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if string(envelope.Value) != `{"headShape":"oval"}` {
		t.Fatalf("unexpected stored value: %s", envelope.Value)
	}
}

func TestWritesRequireOwningSession(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv, "alice", "hunter2")
	slot := srv.URL + "/records/" + session.DID + "/space.faceforge.avatar/self"

	resp := doRecordRequest(t, http.MethodPost, slot, "", []byte(`{}`))
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	other := createSession(t, srv, "mallory", "s3cret")
	resp = doRecordRequest(t, http.MethodPost, slot, other.AccessToken, []byte(`{}`))
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign session, got %d", resp.StatusCode)
	}
}

func TestGetMissingRecordReturnsNotFoundCode(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv, "alice", "hunter2")

	resp := doRecordRequest(t, http.MethodGet, srv.URL+"/records/"+session.DID+"/space.faceforge.avatar/self", "", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var wire recordstore.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if wire.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND code, got %q", wire.Code)
	}
}

func TestRejectsInvalidRecordValue(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv, "alice", "hunter2")
	slot := srv.URL + "/records/" + session.DID + "/space.faceforge.avatar/self"

	req, err := http.NewRequest(http.MethodPost, slot, bytes.NewReader([]byte(`{"value":`)))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed envelope, got %d", resp.StatusCode)
	}
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	tokens, err := NewTokenIssuer("secret", "test")
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}
	minted, err := tokens.Mint("did:faceforge:abc")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	did, err := tokens.Verify(minted)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if did != "did:faceforge:abc" {
		t.Fatalf("expected did round trip, got %q", did)
	}

	foreign, err := NewTokenIssuer("other-secret", "test")
	if err != nil {
		t.Fatalf("new foreign issuer: %v", err)
	}
	if _, err := foreign.Verify(minted); err == nil {
		t.Fatalf("expected verification failure with wrong secret")
	}
}
