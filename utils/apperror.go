package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a missing or out-of-range input. No write has been attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Message
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// NotFoundError reports that a referenced document does not exist (or vanished between
// read and write).
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError reports that the document is not in a state that allows the operation.
// Stale is set when the write lost an optimistic version check and may be retried
// against a fresh read.
type ConflictError struct {
	Message string
	Stale   bool
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Message
}

// GatewayError wraps any failure of the persistence layer.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func NewConflictError(msg string) error {
	return &ConflictError{Message: msg}
}

func NewStaleError(resource, id string) error {
	return &ConflictError{Message: fmt.Sprintf("%s %s was modified concurrently", resource, id), Stale: true}
}

func NewGatewayError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &GatewayError{Op: op, Err: err}
}

// IsStale reports whether err is a lost optimistic version check.
func IsStale(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce) && ce.Stale
}

// StatusFor maps an error to the HTTP status the API answers with.
func StatusFor(err error) int {
	var (
		ve *ValidationError
		ne *NotFoundError
		ce *ConflictError
		ge *GatewayError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &ne):
		return http.StatusNotFound
	case errors.As(err, &ce):
		return http.StatusConflict
	case errors.As(err, &ge):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RetryOnStale runs fn until it succeeds, fails with anything other than a stale
// version conflict, or attempts are exhausted.
func RetryOnStale(attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !IsStale(err) {
			return err
		}
		StaleRetries.Inc()
	}
	return err
}
