package service

import (
	"errors"
	"fmt"

	"github.com/freshtrack/freshtrack-golang/internal/store"
)

// ValidationError signals bad or missing input, including quantity rule
// violations.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NotFoundError signals that a referenced document is absent.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Collection, e.ID)
}

// ConflictError signals that a compare-and-swap write kept losing to
// concurrent updates.
type ConflictError struct {
	Op string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: concurrent update conflict, please retry", e.Op)
}

// AuthError signals an identity or credential failure.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

// StoreError wraps an underlying persistence failure unchanged; it is never
// reinterpreted as a validation problem.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// wrapStore classifies an adapter error: absence becomes NotFoundError,
// anything else a StoreError.
func wrapStore(op, collection, id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Collection: collection, ID: id}
	}
	return &StoreError{Op: op, Err: err}
}
