// Package errors provides structured error types for pisica.
//
// The appearance core never fails: enumerations are closed and numeric
// fields are clamped. Errors only arise at the edges of the program where
// strings and files come in (CLI flags, photo uploads, export I/O), and this
// package gives those edges machine-readable codes.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - UNSUPPORTED*: Inputs or formats the program cannot handle
//   - EXPORT_FAILED / INTERNAL_*: Failures while producing artifacts
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidBreed, "unknown breed: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidBreed) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeExportFailed, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidBreed     Code = "INVALID_BREED"
	ErrCodeInvalidAccessory Code = "INVALID_ACCESSORY"
	ErrCodeInvalidColor     Code = "INVALID_COLOR"
	ErrCodeInvalidOffset    Code = "INVALID_OFFSET"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidScale     Code = "INVALID_SCALE"

	// Resource errors
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeUnsupportedMedia Code = "UNSUPPORTED_MEDIA"

	// Export and internal errors
	ErrCodeExportFailed Code = "EXPORT_FAILED"
	ErrCodeUnsupported  Code = "UNSUPPORTED"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Invalid reports whether the code marks rejected user input.
func (c Code) Invalid() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// Error carries a code, a message for people and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.detail()
}

func (e *Error) detail() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage drops the code prefix, keeping the message and cause.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.detail()
	}
	return err.Error()
}

// IsInvalidInput reports whether err carries any INVALID_* code.
func IsInvalidInput(err error) bool {
	return GetCode(err).Invalid()
}
