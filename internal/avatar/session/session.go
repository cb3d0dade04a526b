// Package session owns the live avatar state for one editing session: the
// current configuration and the assembled hierarchy derived from it.
//
// The session is the single writer. A busy flag serializes mutation, save
// and load so a UI-driven edit can never interleave with an in-flight
// persistence operation; overlapping calls fail fast with ErrBusy.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/louisbranch/faceforge/internal/avatar/assemble"
	"github.com/louisbranch/faceforge/internal/avatar/domain"
	"github.com/louisbranch/faceforge/internal/avatar/geometry"
)

// ErrBusy reports an overlapping operation while a mutate, save or load is
// outstanding.
var ErrBusy = errors.New("avatar session is busy")

// Persister is the save/load surface the session drives. The gateway
// satisfies it.
type Persister interface {
	Save(ctx context.Context, cfg domain.Configuration) error
	Load(ctx context.Context) (domain.Configuration, error)
}

// Session holds one live configuration and its assembled hierarchy.
type Session struct {
	mu        sync.Mutex
	busy      bool
	cfg       domain.Configuration
	assembler *assemble.Assembler
	persister Persister
}

// New creates a session starting from the default configuration, with the
// avatar already assembled. persister may be nil for sessions without an
// authenticated identity; Save and Load then fail.
func New(persister Persister) *Session {
	s := &Session{
		cfg:       domain.DefaultConfiguration(),
		assembler: assemble.New(),
		persister: persister,
	}
	s.assembler.Assemble(s.cfg)
	return s
}

// Configuration returns the current configuration value.
func (s *Session) Configuration() domain.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Hierarchy returns a deep copy of the assembled avatar tree for the
// rendering collaborator. Copying under the lock keeps readers safe from
// concurrent reassembly, which rewrites the live tree's children in place.
func (s *Session) Hierarchy() *geometry.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assembler.Root().Clone()
}

// Busy reports whether a save or load is outstanding. The UI disables
// mutation controls while this is true.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Session) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// Mutate applies a full or partial field update and rebuilds the
// hierarchy. The configuration after a mutation is always complete and
// normalized.
func (s *Session) Mutate(patch domain.PatchInput) (domain.Configuration, error) {
	if !s.acquire() {
		return domain.Configuration{}, ErrBusy
	}
	defer s.release()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = domain.ApplyPatch(s.cfg, patch)
	s.assembler.Assemble(s.cfg)
	return s.cfg, nil
}

// Save persists the current configuration through the gateway. The live
// state is untouched either way.
func (s *Session) Save(ctx context.Context) error {
	if s.persister == nil {
		return errors.New("no persistence gateway configured")
	}
	if !s.acquire() {
		return ErrBusy
	}
	defer s.release()

	return s.persister.Save(ctx, s.Configuration())
}

// Load replaces the live configuration with the stored one and rebuilds
// the hierarchy, atomically with respect to other session operations. A
// missing record or a failure leaves the live state unchanged; the caller
// distinguishes the two through the returned error.
func (s *Session) Load(ctx context.Context) (domain.Configuration, error) {
	if s.persister == nil {
		return domain.Configuration{}, errors.New("no persistence gateway configured")
	}
	if !s.acquire() {
		return domain.Configuration{}, ErrBusy
	}
	defer s.release()

	cfg, err := s.persister.Load(ctx)
	if err != nil {
		return domain.Configuration{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.assembler.Assemble(s.cfg)
	return s.cfg, nil
}
