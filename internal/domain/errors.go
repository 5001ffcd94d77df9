package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by services, repositories and transports.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	// ErrConflict means the stored state moved on: a stale offline update or
	// a recurring schedule that already fired today.
	ErrConflict = errors.New("conflict")

	// ErrUnknownActionType is returned for offline actions whose type is not
	// one of create, update, delete, move.
	ErrUnknownActionType = errors.New("unknown action type")
)

// FieldError is a rejected input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every rejected field of one input. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Errors []FieldError
}

// Error lists all fields, e.g. "validation: name: required; quantity: too long".
// Offline clients show this text next to the rejected action.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation: ")
	for i, fe := range e.Errors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(fe.Field)
		b.WriteString(": ")
		b.WriteString(fe.Message)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// HasField reports whether field was rejected.
func (e *ValidationError) HasField(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// NewValidationError rejects a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// NewValidationErrors wraps errs, or returns nil when errs is empty so input
// validators can return it directly.
func NewValidationErrors(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
