package domain

import (
	"errors"
	"fmt"
)

// Gateway error taxonomy. Every error that leaves the aggregator is one of
// these sentinels (possibly wrapped); the HTTP layer maps them to status codes.
var ErrUnauthenticated = errors.New("authentication required")
var ErrUnauthorized = errors.New("not permitted for this resource")
var ErrNotFound = errors.New("entity not found")
var ErrBackendUnavailable = errors.New("backend unavailable")
var ErrValidation = errors.New("invalid input")
var ErrInternal = errors.New("internal error")

// BackendErrorKind classifies how a backend call failed.
type BackendErrorKind string

const (
	BackendUnreachable     BackendErrorKind = "unreachable"
	BackendTimeout         BackendErrorKind = "timeout"
	BackendNotFound        BackendErrorKind = "not_found"
	BackendInvalidArgument BackendErrorKind = "invalid_argument"
	BackendInternal        BackendErrorKind = "backend_internal"
)

// BackendError is the tagged failure result of a single backend call.
// Clients never return raw transport errors; every failure is wrapped so the
// aggregator can decide between aborting a composite and degrading a section.
type BackendError struct {
	Service string
	Op      string
	Kind    BackendErrorKind
	Err     error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Service, e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Service, e.Op, e.Kind)
}

func (e *BackendError) Unwrap() error { return e.Err }

// NewBackendError builds a BackendError for the given call site.
func NewBackendError(service, op string, kind BackendErrorKind, err error) *BackendError {
	return &BackendError{Service: service, Op: op, Kind: kind, Err: err}
}

// AsBackendError unwraps err into a *BackendError if it is one.
func AsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// RequiredCallError translates a failed required backend call into the
// taxonomy error that aborts the whole composite operation. A missing entity
// stays NotFound; everything else means the backend could not serve us.
func RequiredCallError(err error) error {
	if be, ok := AsBackendError(err); ok && be.Kind == BackendNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
}
