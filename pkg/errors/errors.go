// Package errors provides structured error types shared by the srgsearch CLI
// and HTTP API.
//
// The core search package reports failures with plain sentinel errors
// (srg.ErrSpecViolation, srg.ErrBudgetExceeded). The outer layers translate
// them into coded errors so that:
//   - the CLI can print a short message without the code prefix
//   - the API can map a code to an HTTP status
//   - callers can branch on a machine-readable code
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Resource not found
//   - SEARCH_*: Search outcomes that are not a found graph
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRow, "row %d has degree %d", i, d)
//	if errors.Is(err, errors.ErrCodeInvalidRow) {
//	    // Handle validation error
//	}
//
//	// Translate a search error
//	err = errors.FromSearch(err)
package errors

import (
	"context"
	"errors"
	"fmt"

	"github.com/matzehuels/srgsearch/pkg/srg"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidRow    Code = "INVALID_ROW"
	ErrCodeInvalidPreset Code = "INVALID_PRESET"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidKey    Code = "INVALID_KEY"

	// Search outcomes
	ErrCodeSpecViolation  Code = "SPEC_VIOLATION"
	ErrCodeBudgetExceeded Code = "SEARCH_BUDGET_EXCEEDED"
	ErrCodeCanceled       Code = "SEARCH_CANCELED"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Backend errors
	ErrCodeStore Code = "STORE_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
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
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// FromSearch translates an error returned by srg.Solve into a coded error.
// Already coded errors and nil pass through unchanged.
func FromSearch(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	switch {
	case errors.Is(err, srg.ErrSpecViolation):
		return Wrap(ErrCodeSpecViolation, err, "invalid graph parameters or seed rows")
	case errors.Is(err, srg.ErrBudgetExceeded):
		return Wrap(ErrCodeBudgetExceeded, err, "search stopped")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Wrap(ErrCodeCanceled, err, "search aborted")
	default:
		return Wrap(ErrCodeInternal, err, "search failed")
	}
}
