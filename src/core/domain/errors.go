// Package domain contains domain entities, value objects, and domain-specific errors.
// This package should have no external dependencies except the standard library.
package domain

import (
	"errors"
	"fmt"
)

// Domain error types for consistent error handling across the application.
// Every failure a caller can observe falls into exactly one of these categories.

var (
	// ErrUnauthenticated is returned when no credential was presented.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrTokenExpired is returned when the credential is well-formed but past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidToken is returned when the credential is malformed or its signature does not verify.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a requested resource does not exist or is not owned by the caller.
	ErrNotFound = errors.New("resource not found")

	// ErrInternal is returned when storage or another collaborator fails.
	ErrInternal = errors.New("internal error")
)

// DomainError wraps a base error with additional context.
// It provides a standard way to add details to domain errors.
type DomainError struct {
	// Base is the underlying error type (e.g., ErrNotFound)
	Base error

	// Message provides human-readable context
	Message string

	// Field indicates which field caused the error (for validation errors)
	Field string

	// Cause is the wrapped collaborator error, kept for logging only.
	Cause error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Base.Error(), e.Message, e.Field)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Base.Error(), e.Message)
	}
	return e.Base.Error()
}

// Unwrap returns the base error and the cause for errors.Is/As support.
func (e *DomainError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Base, e.Cause}
	}
	return []error{e.Base}
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Base:    ErrNotFound,
		Message: resource,
	}
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidInput,
		Message: message,
		Field:   field,
	}
}

// NewInternalError wraps a collaborator failure. The cause is never shown to API clients.
func NewInternalError(op string, cause error) *DomainError {
	return &DomainError{
		Base:    ErrInternal,
		Message: op,
		Cause:   cause,
	}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnauthenticated checks if an error is a missing-credential error.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsTokenExpired checks if an error is an expired-credential error.
func IsTokenExpired(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}

// IsInvalidToken checks if an error is a malformed-credential error.
func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

// IsInternal checks if an error is an internal error.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
