package apperrors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypePostgres represents relational store failures
	ErrorTypePostgres ErrorType = "postgres"
	// ErrorTypeMongo represents document store failures
	ErrorTypeMongo ErrorType = "mongo"
	// ErrorTypeGraph represents graph store failures
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeNotImplemented marks exercise methods that are not done yet,
	// so students can tell "not done" apart from "environment broken"
	ErrorTypeNotImplemented ErrorType = "not_implemented"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type    ErrorType
	Message string
	Err     error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// New creates a new base error
func New(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// ErrNotImplemented is returned by exercise methods that have no body yet
var ErrNotImplemented = New(ErrorTypeNotImplemented, "not implemented", nil)

// NewStoreUnavailable wraps a driver error as a backend-unavailable failure
// for the given store category.
func NewStoreUnavailable(errType ErrorType, operation string, err error) *BaseError {
	return New(errType, fmt.Sprintf("store operation failed: %s", operation), err)
}

// IsErrorType checks if an error (or anything it wraps) is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	var baseErr *BaseError
	if errors.As(err, &baseErr) {
		return baseErr.Type == errType
	}
	return false
}
