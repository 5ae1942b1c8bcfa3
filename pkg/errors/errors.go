// Package errors provides structured error types for certpaths.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//
// # Error Codes
//
// Two codes carry the catalog contract:
//   - INVALID_SCHEMA: a raw import violates the catalog schema (SchemaError).
//     Fatal at load time; no partial catalog is ever produced.
//   - INTEGRITY_FAULT: the graph assembler was handed a link whose endpoint
//     is not among its nodes (IntegrityFault).
//
// The remaining codes follow the INVALID_* / NOT_FOUND / INTERNAL_* naming.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSchema, "certs[%d]: missing field %q", i, key)
//	if errors.Is(err, errors.ErrCodeSchema) {
//	    // reject the import
//	}
//
//	// Wrap a sentinel so callers can also use the standard errors.Is
//	err := errors.Wrap(errors.ErrCodeSchema, ErrDuplicateID, "certs[%d]: id %q", i, id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Catalog contract errors
	ErrCodeSchema    Code = "INVALID_SCHEMA"
	ErrCodeIntegrity Code = "INTEGRITY_FAULT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Schema is shorthand for a SchemaError wrapping the given sentinel.
func Schema(cause error, format string, args ...any) *Error {
	return Wrap(ErrCodeSchema, cause, format, args...)
}

// Integrity is shorthand for an IntegrityFault wrapping the given sentinel.
func Integrity(cause error, format string, args ...any) *Error {
	return Wrap(ErrCodeIntegrity, cause, format, args...)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsSchemaError reports whether err is a catalog SchemaError.
func IsSchemaError(err error) bool { return Is(err, ErrCodeSchema) }

// IsIntegrityFault reports whether err is a graph IntegrityFault.
func IsIntegrityFault(err error) bool { return Is(err, ErrCodeIntegrity) }

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}
