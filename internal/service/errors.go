package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCredentials is returned by login when the email is unknown or
// the password does not match. Callers must not learn which of the two failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// NotFoundError reports a single-id lookup that matched no record.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found.", e.Resource, e.ID)
}

// ValidationError carries the accumulated field validation messages for a
// rejected payload.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, " ")
}

// ConflictError reports an operation rejected because it would leave a
// dangling reference.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// PersistenceError wraps a storage-engine failure so raw driver errors never
// cross the service boundary unlabeled.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence failure: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
