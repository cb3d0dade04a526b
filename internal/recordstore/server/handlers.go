package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/louisbranch/faceforge/internal/platform/errors"
	"github.com/louisbranch/faceforge/internal/platform/id"
	"github.com/louisbranch/faceforge/internal/recordstore"
	"github.com/louisbranch/faceforge/internal/recordstore/storage"
	"github.com/louisbranch/faceforge/internal/telemetry"
)

// maxBodyBytes bounds request bodies; avatar records are tiny.
const maxBodyBytes = 1 << 20

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req recordstore.SessionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.CodeInvalidCredentials, "malformed session request", err))
		return
	}
	handle := strings.TrimSpace(req.Identity)
	if handle == "" || req.Password == "" {
		writeError(w, apperrors.New(apperrors.CodeInvalidCredentials, "identity and password are required"))
		return
	}

	identity, err := s.store.GetIdentityByHandle(r.Context(), handle)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// First session for this handle registers it. The store is a
		// single-tenant development stand-in, not a public registry.
		identity, err = s.registerIdentity(r, handle, req.Password)
		if err != nil {
			writeError(w, apperrors.Wrap(apperrors.CodeUnknown, "register identity", err))
			return
		}
	case err != nil:
		writeError(w, apperrors.Wrap(apperrors.CodeUnknown, "look up identity", err))
		return
	default:
		if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(req.Password)) != nil {
			writeError(w, apperrors.New(apperrors.CodeInvalidCredentials, "wrong password"))
			return
		}
	}

	token, err := s.tokens.Mint(identity.DID)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.CodeUnknown, "mint session token", err))
		return
	}
	_ = s.emitter.Emit(r.Context(), telemetry.SeverityInfo, "session.create", identity.DID, "")
	writeJSON(w, http.StatusOK, recordstore.SessionResponse{DID: identity.DID, AccessToken: token})
}

func (s *Server) registerIdentity(r *http.Request, handle, password string) (storage.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return storage.Identity{}, fmt.Errorf("hash password: %w", err)
	}
	suffix, err := id.NewID()
	if err != nil {
		return storage.Identity{}, fmt.Errorf("generate did: %w", err)
	}
	identity := storage.Identity{
		DID:          "did:faceforge:" + suffix,
		Handle:       handle,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateIdentity(r.Context(), identity); err != nil {
		return storage.Identity{}, err
	}
	return identity, nil
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	did, collection, rkey, ok := slotFromPath(w, r)
	if !ok {
		return
	}

	record, err := s.store.GetRecord(r.Context(), did, collection, rkey)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, apperrors.New(apperrors.CodeNotFound, "no record at this slot"))
		return
	}
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.CodeUnknown, "get record", err))
		return
	}

	writeJSON(w, http.StatusOK, recordstore.Envelope{
		DID:        record.DID,
		Collection: record.Collection,
		RKey:       record.RKey,
		Value:      json.RawMessage(record.Value),
	})
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	s.handleWrite(w, r, false)
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	s.handleWrite(w, r, true)
}

func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request, create bool) {
	did, collection, rkey, ok := slotFromPath(w, r)
	if !ok {
		return
	}
	authedDID, err := s.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if authedDID != did {
		writeError(w, apperrors.New(apperrors.CodeUnauthenticated, "session does not own this repository"))
		return
	}

	var envelope struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&envelope); err != nil {
		writeError(w, apperrors.Wrap(apperrors.CodeInvalidRecord, "malformed record envelope", err))
		return
	}
	if len(envelope.Value) == 0 || !json.Valid(envelope.Value) {
		writeError(w, apperrors.New(apperrors.CodeInvalidRecord, "record value must be valid JSON"))
		return
	}

	record := storage.Record{DID: did, Collection: collection, RKey: rkey, Value: envelope.Value}
	operation := "record.update"
	if create {
		operation = "record.create"
		err = s.store.CreateRecord(r.Context(), record)
	} else {
		err = s.store.UpdateRecord(r.Context(), record)
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, apperrors.New(apperrors.CodeNotFound, "no record at this slot"))
		return
	case errors.Is(err, storage.ErrAlreadyExists):
		writeError(w, apperrors.New(apperrors.CodeAlreadyExists, "record slot is occupied"))
		return
	case err != nil:
		writeError(w, apperrors.Wrap(apperrors.CodeUnknown, operation, err))
		return
	}

	_ = s.emitter.Emit(r.Context(), telemetry.SeverityInfo, operation, did, collection+"/"+rkey)
	status := http.StatusOK
	if create {
		status = http.StatusCreated
	}
	writeJSON(w, status, recordstore.Envelope{DID: did, Collection: collection, RKey: rkey})
}

func (s *Server) authenticate(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", apperrors.New(apperrors.CodeUnauthenticated, "bearer token required")
	}
	return s.tokens.Verify(strings.TrimSpace(token))
}

func slotFromPath(w http.ResponseWriter, r *http.Request) (did, collection, rkey string, ok bool) {
	did = strings.TrimSpace(r.PathValue("did"))
	collection = strings.TrimSpace(r.PathValue("collection"))
	rkey = strings.TrimSpace(r.PathValue("rkey"))
	if did == "" {
		writeError(w, apperrors.New(apperrors.CodeEmptyIdentity, "did is required"))
		return "", "", "", false
	}
	if collection == "" || rkey == "" {
		writeError(w, apperrors.New(apperrors.CodeEmptyRecordKey, "collection and rkey are required"))
		return "", "", "", false
	}
	return did, collection, rkey, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		domainErr = apperrors.Wrap(apperrors.CodeUnknown, err.Error(), err)
	}
	writeJSON(w, domainErr.Code.HTTPStatus(), recordstore.ErrorResponse{
		Code:    string(domainErr.Code),
		Message: domainErr.Message,
	})
}
