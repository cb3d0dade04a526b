// Package storage defines the persistence interfaces for the record store
// service: identities, keyed record slots and operational telemetry.
// Implementations live in subpackages.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a create-only write hit an existing record.
	ErrAlreadyExists = errors.New("record already exists")
)

// Record is one stored record slot.
type Record struct {
	DID        string
	Collection string
	RKey       string
	Value      []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RecordStore persists keyed records per identity.
type RecordStore interface {
	GetRecord(ctx context.Context, did, collection, rkey string) (Record, error)
	// CreateRecord fills an empty slot; ErrAlreadyExists when occupied.
	CreateRecord(ctx context.Context, record Record) error
	// UpdateRecord overwrites an occupied slot; ErrNotFound when empty.
	UpdateRecord(ctx context.Context, record Record) error
}

// Identity is one registered account on the store.
type Identity struct {
	DID          string
	Handle       string
	PasswordHash string
	CreatedAt    time.Time
}

// IdentityStore persists account records.
type IdentityStore interface {
	GetIdentityByHandle(ctx context.Context, handle string) (Identity, error)
	CreateIdentity(ctx context.Context, identity Identity) error
}

// TelemetryEvent records one operational event.
type TelemetryEvent struct {
	Timestamp time.Time
	Severity  string
	Operation string
	DID       string
	Detail    string
}

// TelemetryStore appends operational telemetry events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, event TelemetryEvent) error
}
