package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                  = errors.New("not found")
	ErrValidation                = errors.New("validation failed")
	ErrUpstreamTransient         = errors.New("upstream transient failure")
	ErrUpstreamStatus            = errors.New("upstream returned error status")
	ErrUpstreamMalformedResponse = errors.New("upstream returned malformed response")
	ErrNoStoresFound             = errors.New("no stores found for address")
	ErrStoreIDMissing            = errors.New("selected store has no identifier")
	ErrConfirmationRequired      = errors.New("explicit confirmation required")
	ErrUnknownOrExpiredToken     = errors.New("unknown or expired order token")
	ErrQuoteExpired              = errors.New("quote expired")
)

// ValidationError reports malformed or missing user input for a named field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// UpstreamError carries the last failed upstream response once the retry budget is spent
// or a terminal status was returned.
type UpstreamError struct {
	Path       string
	Status     int
	StatusText string
	Body       []byte
	Attempts   int
	Retryable  bool
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 && e.Err != nil {
		return fmt.Sprintf("upstream %s failed after %d attempt(s): %v", e.Path, e.Attempts, e.Err)
	}
	return fmt.Sprintf("upstream %s failed after %d attempt(s): %s", e.Path, e.Attempts, e.StatusText)
}

func (e *UpstreamError) Is(target error) bool {
	if e.Retryable {
		return target == ErrUpstreamTransient
	}
	return target == ErrUpstreamStatus
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means upstream declared JSON but sent something unparseable.
type MalformedResponseError struct {
	Path   string
	Status int
	Body   []byte
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("upstream %s returned malformed JSON (status %d)", e.Path, e.Status)
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrUpstreamMalformedResponse
}
