// Package recordstore speaks the keyed-record protocol of the per-identity
// record store: one JSON record per (did, collection, rkey) slot, with
// update-only and create-only write paths and bearer-token sessions.
package recordstore

import "errors"

var (
	// ErrNotFound indicates the addressed record slot holds no record.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a create-only write hit an occupied slot.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrUnauthenticated indicates a missing or rejected session token.
	ErrUnauthenticated = errors.New("authentication required")
)

// Envelope wraps a stored record on the wire.
type Envelope struct {
	DID        string `json:"did"`
	Collection string `json:"collection"`
	RKey       string `json:"rkey"`
	Value      any    `json:"value"`
}

// SessionRequest starts a session for an identity.
type SessionRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

// SessionResponse carries the minted session.
type SessionResponse struct {
	DID         string `json:"did"`
	AccessToken string `json:"accessToken"`
}

// ErrorResponse is the wire shape of a failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
