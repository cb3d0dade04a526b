// Package errors provides structured error handling for FaceForge
// services.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Record store errors
	CodeNotFound       Code = "NOT_FOUND"
	CodeAlreadyExists  Code = "ALREADY_EXISTS"
	CodeInvalidRecord  Code = "INVALID_RECORD"
	CodeEmptyIdentity  Code = "EMPTY_IDENTITY"
	CodeEmptyRecordKey Code = "EMPTY_RECORD_KEY"

	// Session errors
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeSessionExpired     Code = "SESSION_EXPIRED"

	// Editor errors
	CodeSessionBusy  Code = "SESSION_BUSY"
	CodeInvalidPatch Code = "INVALID_PATCH"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeInvalidRecord, CodeEmptyIdentity, CodeEmptyRecordKey, CodeInvalidPatch:
		return http.StatusBadRequest
	case CodeUnauthenticated, CodeInvalidCredentials, CodeSessionExpired:
		return http.StatusUnauthorized
	case CodeSessionBusy:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
