package api

import (
	"errors"
	"fmt"
)

// NetworkError covers failed requests, timeouts, and non-2xx responses other
// than auth and conflict statuses. All failures are recoverable by repeating
// the user action; nothing in this client retries automatically.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

// Error describes the failed call.
func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

// Unwrap exposes the transport error, if any.
func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError covers 401/403 responses. Redirecting to login is the injected
// auth hook's job, not this client's.
type AuthError struct {
	Status int
}

// Error describes the auth failure.
func (e *AuthError) Error() string {
	return fmt.Sprintf("not authorized (status %d)", e.Status)
}

// ConflictError covers 409 responses, e.g. approving an enrollment that is
// no longer pending on the server.
type ConflictError struct {
	Message string
}

// Error describes the conflict.
func (e *ConflictError) Error() string {
	if e.Message == "" {
		return "conflict with server state"
	}
	return e.Message
}

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
