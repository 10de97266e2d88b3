// Package errors provides the structured error type shared by the
// library and the CLI. Every failure surfaced to a caller is an *Error
// carrying a category code, a human message, and an optional suggestion.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing failures.
const (
	// ErrValidation covers bad connection parameters and malformed
	// arguments: illegal host/login characters, missing config or
	// identity files, empty source lists.
	ErrValidation = "VALIDATION"
	// ErrConnection covers ssh exit code 255, connect timeouts, and
	// process I/O failures during remote execution.
	ErrConnection = "CONNECT"
	// ErrTransfer covers nonzero scp exits, timeouts, and I/O failures
	// during file transfer.
	ErrTransfer = "TRANSFER"
	// ErrPostProcess covers failed remote chmod/chown after a transfer.
	ErrPostProcess = "POSTPROCESS"
	// ErrConfig covers CLI configuration file problems.
	ErrConfig = "CONFIG"
)

// Error is a structured error with code, message, suggestion, and
// optional cause.
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrConnection code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrConnection,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %s", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var werr *Error
	if errors.As(err, &werr) {
		return werr.Code == code
	}
	return false
}
