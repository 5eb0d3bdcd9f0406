package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Every error returned by the service layer
// matches exactly one of these through errors.Is.
var (
	// ErrValidation is returned when input is malformed (empty title, unknown status).
	// This is usually wrapped in a *ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a unique value is already taken.
	ErrConflict = errors.New("conflict")

	// ErrAuthentication is returned for bad credentials. It never says whether
	// the username or the password was wrong.
	ErrAuthentication = errors.New("invalid credentials")

	// ErrInvalidToken is returned for missing, malformed, tampered or expired tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNotFound is returned when an entity is absent or owned by someone else.
	ErrNotFound = errors.New("not found")

	// ErrPersistence is returned when the storage layer fails unexpectedly.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error, defaulting to ErrValidation so that
// errors.Is(err, ErrValidation) holds for every ValidationError.
func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidation
	}
	return e.Err
}

// NewValidationError creates a ValidationError for field.
// err should be ErrValidation or an error wrapping it; nil defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
