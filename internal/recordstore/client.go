package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// defaultRequestTimeout caps record store calls when the caller's context
// carries no deadline.
const defaultRequestTimeout = 10 * time.Second

// Client is an HTTP client for a record store endpoint. It is safe for
// concurrent use once a session is established.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	did   string
	token string
}

// NewClient creates a record store client for a base URL.
func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("record store base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse record store base url: %w", err)
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}, nil
}

// CreateSession authenticates an identity and stores the minted token for
// subsequent writes.
func (c *Client) CreateSession(ctx context.Context, identity, password string) (SessionResponse, error) {
	body, err := json.Marshal(SessionRequest{Identity: identity, Password: password})
	if err != nil {
		return SessionResponse{}, fmt.Errorf("encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/session", bytes.NewReader(body))
	if err != nil {
		return SessionResponse{}, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SessionResponse{}, responseError(resp)
	}

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return SessionResponse{}, fmt.Errorf("decode session response: %w", err)
	}

	c.mu.Lock()
	c.did = session.DID
	c.token = session.AccessToken
	c.mu.Unlock()
	return session, nil
}

// DID returns the identity scope key of the current session, if any.
func (c *Client) DID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.did
}

// GetRecord fetches the record value stored at a slot.
func (c *Client) GetRecord(ctx context.Context, did, collection, rkey string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, c.recordURL(did, collection, rkey), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	var envelope struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode record envelope: %w", err)
	}
	return envelope.Value, nil
}

// UpdateRecord overwrites an existing record slot. It fails with
// ErrNotFound when the slot is empty.
func (c *Client) UpdateRecord(ctx context.Context, did, collection, rkey string, value []byte) error {
	return c.write(ctx, http.MethodPut, did, collection, rkey, value)
}

// CreateRecord fills an empty record slot. It fails with ErrAlreadyExists
// when the slot is occupied.
func (c *Client) CreateRecord(ctx context.Context, did, collection, rkey string, value []byte) error {
	return c.write(ctx, http.MethodPost, did, collection, rkey, value)
}

func (c *Client) write(ctx context.Context, method, did, collection, rkey string, value []byte) error {
	body, err := json.Marshal(struct {
		Value json.RawMessage `json:"value"`
	}{Value: value})
	if err != nil {
		return fmt.Errorf("encode record envelope: %w", err)
	}

	resp, err := c.do(ctx, method, c.recordURL(did, collection, rkey), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return responseError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) recordURL(did, collection, rkey string) string {
	return fmt.Sprintf("%s/records/%s/%s/%s",
		c.baseURL, url.PathEscape(did), url.PathEscape(collection), url.PathEscape(rkey))
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build record store request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("record store request: %w", err)
	}
	return resp, nil
}

// responseError maps a non-success response to a sentinel when the wire
// code identifies one, or to a descriptive error otherwise.
func responseError(resp *http.Response) error {
	var wire ErrorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&wire)

	switch wire.Code {
	case "NOT_FOUND":
		return ErrNotFound
	case "ALREADY_EXISTS":
		return ErrAlreadyExists
	case "UNAUTHENTICATED":
		return ErrUnauthenticated
	}
	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrAlreadyExists
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	}
	if wire.Message != "" {
		return fmt.Errorf("record store: %s (status %d)", wire.Message, resp.StatusCode)
	}
	return fmt.Errorf("record store: unexpected status %d", resp.StatusCode)
}
