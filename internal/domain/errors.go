package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized: missing/expired credentials. The HTTP layer maps 401
	// onto this and the session is invalidated as a side effect.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden: the caller lacks the required role. Role-gated mutators
	// return this before any network call when checkable client-side.
	ErrForbidden = errors.New("forbidden")
)

// APIError carries the HTTP status and the server-supplied message (when
// present) of a failed request.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// ServerMessage extracts the server-supplied message from err, or returns
// fallback. Used to prefer backend wording in user-facing notifications.
func ServerMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
