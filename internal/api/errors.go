package api

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned by flows that need a signed-in buyer or
// seller identity before any network call is issued.
var ErrAuthRequired = errors.New("authentication required")

// APIError is a non-2xx response from the marketplace backend. The server
// reports rejections (ownership mismatch, already deleted, bad payload) as
// a well-formed error body; transport failures are returned as wrapped
// *url.Error values instead.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// Rejection reports whether the error carries a server-side rejection body,
// as opposed to a transport-level failure.
func (e *APIError) Rejection() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.Message != ""
}

// ValidationError is a client-side precondition failure caught before any
// round trip: missing image, non-positive price, oversized upload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}
