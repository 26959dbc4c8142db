// Package errors provides structured error types for masonry.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - A clear split between contract violations and ordinary failures
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input or data source contract violations
//   - *_NOT_FOUND: Resource not found
//   - STORE_*: Storage backend failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Contract Violations
//
// A misconfigured data source (non-positive column count, a pinned column
// outside the section, a missing delegate) or a re-entrant layout pass is a
// contract violation. The layout pass that detects one is aborted:
//
//	if err := engine.Prepare(); errors.IsContractViolation(err) {
//	    // the data source is broken; geometry is undefined
//	}
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidColumnCount, "section %d has %d columns", s, n)
//	if errors.Is(err, errors.ErrCodeInvalidColumnCount) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStoreUnavailable, origErr, "connect to %s", addr)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Data source contract violations
	ErrCodeInvalidColumnCount Code = "INVALID_COLUMN_COUNT"
	ErrCodeInvalidColumn      Code = "INVALID_COLUMN"
	ErrCodeMissingDelegate    Code = "MISSING_DELEGATE"
	ErrCodeReentrantPrepare   Code = "REENTRANT_PREPARE"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidScenario Code = "INVALID_SCENARIO"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeScenarioNotFound Code = "SCENARIO_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	// Storage errors
	ErrCodeStoreUnavailable Code = "STORE_UNAVAILABLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// contractCodes are the codes raised when a data source breaks its contract.
var contractCodes = map[Code]bool{
	ErrCodeInvalidColumnCount: true,
	ErrCodeInvalidColumn:      true,
	ErrCodeMissingDelegate:    true,
	ErrCodeReentrantPrepare:   true,
}

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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsContractViolation reports whether err signals a broken data source
// contract or a re-entrant layout pass.
func IsContractViolation(err error) bool {
	return contractCodes[GetCode(err)]
}

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
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error to the status code the HTTP API responds with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidScenario, ErrCodeInvalidFormat, ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case ErrCodeInvalidColumnCount, ErrCodeInvalidColumn, ErrCodeMissingDelegate:
		return http.StatusUnprocessableEntity
	case ErrCodeNotFound, ErrCodeScenarioNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	case ErrCodeReentrantPrepare:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
