package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the request never produced an HTTP response
	// (connection refused, DNS failure, timeout).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means a gated call was rejected with 401. The stored
	// session is no longer usable and the user has to log in again.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials means the login endpoint rejected the
	// username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidResponse means the server answered 2xx but the body did not
	// have the expected shape (e.g. a login response without an access token).
	ErrInvalidResponse = errors.New("invalid server response")
)

// StatusError is returned for HTTP error statuses that have no dedicated
// sentinel, so callers can decide how to present them.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}
