package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrProfileNotFound    = errors.New("buyer profile not found")
	ErrDuplicateProfileID = errors.New("profile id already exists")
	ErrTemplateNotFound   = errors.New("invoice template not found")
	ErrInvoiceNotFound    = errors.New("invoice file not found")
	ErrSequenceConflict   = errors.New("invoice number already in use")
	ErrConversionFailed   = errors.New("document conversion failed")
)

// ValidationError names the field that failed boundary validation.
// It unwraps to ErrValidation so handlers can map it uniformly.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
