// Package gateway persists avatar configurations to the per-identity
// record store: one record per identity at a fixed collection and key.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/faceforge/internal/avatar/codec"
	"github.com/louisbranch/faceforge/internal/avatar/domain"
	"github.com/louisbranch/faceforge/internal/recordstore"
)

const (
	// Collection is the record store collection for avatar records.
	Collection = "space.faceforge.avatar"
	// RecordKey is the single well-known slot per identity. One avatar per
	// identity; there is no multi-avatar support.
	RecordKey = "self"
)

var (
	// ErrNoRecord reports that the identity has no stored avatar yet. This
	// is informational, not a failure.
	ErrNoRecord = errors.New("no avatar record stored for this identity")
	// ErrNoIdentity indicates the gateway was constructed without an
	// authenticated identity.
	ErrNoIdentity = errors.New("an authenticated identity is required")
)

// RecordClient is the slice of the record store protocol the gateway needs.
type RecordClient interface {
	GetRecord(ctx context.Context, did, collection, rkey string) ([]byte, error)
	UpdateRecord(ctx context.Context, did, collection, rkey string, value []byte) error
	CreateRecord(ctx context.Context, did, collection, rkey string, value []byte) error
}

// Identity scopes reads and writes to one user's record slot.
type Identity struct {
	DID string
}

// Gateway saves and loads one identity's avatar configuration.
type Gateway struct {
	client   RecordClient
	identity Identity
	now      func() time.Time
	tracer   trace.Tracer
}

// New creates a gateway for an authenticated identity. Both operations
// require one, so construction without an identity is refused.
func New(client RecordClient, identity Identity) (*Gateway, error) {
	if client == nil {
		return nil, fmt.Errorf("record client is required")
	}
	identity.DID = strings.TrimSpace(identity.DID)
	if identity.DID == "" {
		return nil, ErrNoIdentity
	}
	return &Gateway{
		client:   client,
		identity: identity,
		now:      time.Now,
		tracer:   otel.Tracer("faceforge/avatar/gateway"),
	}, nil
}

// Save writes the full encoded configuration to the identity's slot:
// update first, create only when no record exists yet. Both branches carry
// the identical payload, so a failed update never leaves a partial write.
func (g *Gateway) Save(ctx context.Context, cfg domain.Configuration) error {
	ctx, span := g.tracer.Start(ctx, "avatar.save")
	defer span.End()

	payload, err := codec.EncodeRecord(codec.ToRecord(cfg, g.now))
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	err = g.client.UpdateRecord(ctx, g.identity.DID, Collection, RecordKey, payload)
	if errors.Is(err, recordstore.ErrNotFound) {
		err = g.client.CreateRecord(ctx, g.identity.DID, Collection, RecordKey, payload)
	}
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("save avatar record: %w", err)
	}
	return nil
}

// Load fetches and decodes the identity's stored configuration. A missing
// record returns ErrNoRecord so callers can leave the live configuration
// untouched; every other failure is a hard error.
func (g *Gateway) Load(ctx context.Context) (domain.Configuration, error) {
	ctx, span := g.tracer.Start(ctx, "avatar.load")
	defer span.End()

	payload, err := g.client.GetRecord(ctx, g.identity.DID, Collection, RecordKey)
	if errors.Is(err, recordstore.ErrNotFound) {
		return domain.Configuration{}, ErrNoRecord
	}
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return domain.Configuration{}, fmt.Errorf("load avatar record: %w", err)
	}

	cfg, err := codec.DecodeRecord(payload)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return domain.Configuration{}, err
	}
	return cfg, nil
}
