// Package domainerrors provides coded errors that separate business
// rejections from infrastructure failures. Services translate store and
// broker sentinel errors into coded errors; transport layers map codes to
// HTTP statuses without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers.
type Code string

const (
	// CodeBadRequest marks malformed or unparseable input.
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput marks input that parsed but violates a contract,
	// such as an unknown enum value.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks a missing or inaccessible entity.
	CodeNotFound Code = "not_found"
	// CodeConflict marks a uniqueness or state conflict.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation marks a domain invariant breach.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeTimeout marks a deadline or cancellation abort.
	CodeTimeout Code = "timeout"
	// CodeUnavailable marks a downstream dependency failure that is
	// retry-eligible (broker unreachable, publish not acknowledged).
	CodeUnavailable Code = "unavailable"
	// CodeInternal marks everything the caller cannot act on.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
// The cause remains reachable through errors.Is / errors.As.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// IsBusinessRejection reports whether err is a business-rule rejection
// (reported before any mutation) as opposed to an infrastructure failure.
func IsBusinessRejection(err error) bool {
	switch CodeOf(err) {
	case CodeBadRequest, CodeInvalidInput, CodeNotFound, CodeConflict, CodeInvariantViolation:
		return true
	}
	return false
}
