// Package sqlite provides a SQLite-backed record store storage
// implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/faceforge/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/faceforge/internal/recordstore/storage"
	"github.com/louisbranch/faceforge/internal/recordstore/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists record store state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite record store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetRecord returns one record slot.
func (s *Store) GetRecord(ctx context.Context, did, collection, rkey string) (storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return storage.Record{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Record{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT did, collection, rkey, value, created_at, updated_at
		   FROM records
		  WHERE did = ? AND collection = ? AND rkey = ?`,
		strings.TrimSpace(did),
		strings.TrimSpace(collection),
		strings.TrimSpace(rkey),
	)

	var record storage.Record
	var createdAt, updatedAt int64
	err := row.Scan(
		&record.DID,
		&record.Collection,
		&record.RKey,
		&record.Value,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Record{}, storage.ErrNotFound
		}
		return storage.Record{}, fmt.Errorf("get record: %w", err)
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

// CreateRecord inserts one record into an empty slot.
func (s *Store) CreateRecord(ctx context.Context, record storage.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := validateSlot(record); err != nil {
		return err
	}
	now := time.Now().UTC()
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO records (did, collection, rkey, value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.DID,
		record.Collection,
		record.RKey,
		record.Value,
		toMillis(createdAt),
		toMillis(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

// UpdateRecord overwrites one occupied record slot.
func (s *Store) UpdateRecord(ctx context.Context, record storage.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := validateSlot(record); err != nil {
		return err
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE records SET value = ?, updated_at = ?
		  WHERE did = ? AND collection = ? AND rkey = ?`,
		record.Value,
		toMillis(time.Now().UTC()),
		record.DID,
		record.Collection,
		record.RKey,
	)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetIdentityByHandle returns one identity by its handle.
func (s *Store) GetIdentityByHandle(ctx context.Context, handle string) (storage.Identity, error) {
	if err := ctx.Err(); err != nil {
		return storage.Identity{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Identity{}, fmt.Errorf("storage is not configured")
	}
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return storage.Identity{}, fmt.Errorf("handle is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT did, handle, password_hash, created_at FROM identities WHERE handle = ?`,
		handle,
	)

	var identity storage.Identity
	var createdAt int64
	err := row.Scan(&identity.DID, &identity.Handle, &identity.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Identity{}, storage.ErrNotFound
		}
		return storage.Identity{}, fmt.Errorf("get identity: %w", err)
	}
	identity.CreatedAt = fromMillis(createdAt)
	return identity, nil
}

// CreateIdentity inserts one identity record.
func (s *Store) CreateIdentity(ctx context.Context, identity storage.Identity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(identity.DID) == "" {
		return fmt.Errorf("did is required")
	}
	if strings.TrimSpace(identity.Handle) == "" {
		return fmt.Errorf("handle is required")
	}
	createdAt := identity.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO identities (did, handle, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		identity.DID,
		identity.Handle,
		identity.PasswordHash,
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create identity: %w", err)
	}
	return nil
}

// AppendTelemetryEvent records one operational event.
func (s *Store) AppendTelemetryEvent(ctx context.Context, event storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO telemetry_events (timestamp, severity, operation, did, detail)
		 VALUES (?, ?, ?, ?, ?)`,
		toMillis(timestamp),
		event.Severity,
		event.Operation,
		event.DID,
		event.Detail,
	)
	if err != nil {
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}

func validateSlot(record storage.Record) error {
	if strings.TrimSpace(record.DID) == "" {
		return fmt.Errorf("did is required")
	}
	if strings.TrimSpace(record.Collection) == "" {
		return fmt.Errorf("collection is required")
	}
	if strings.TrimSpace(record.RKey) == "" {
		return fmt.Errorf("rkey is required")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var (
	_ storage.RecordStore    = (*Store)(nil)
	_ storage.IdentityStore  = (*Store)(nil)
	_ storage.TelemetryStore = (*Store)(nil)
)
