package domain

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeInvalidArgument marks malformed identifiers or payloads. Not
	// retryable; the caller must fix the request.
	CodeInvalidArgument Code = "invalid_argument"
	// CodeNotFound marks an unknown experiment.
	CodeNotFound Code = "not_found"
	// CodeInvalidState marks an operation the experiment's lifecycle state
	// disallows, such as assigning a new user to a stopped experiment.
	CodeInvalidState Code = "invalid_state"
	// CodeUnassignedUser marks an event logged for a user with no prior
	// assignment. The caller must assign first.
	CodeUnassignedUser Code = "unassigned_user"
	// CodeConflict marks a lost race on assignment creation. Resolved inside
	// the assignment engine and never surfaced to callers.
	CodeConflict Code = "conflict"
	// CodeUnavailable marks a store that is unreachable or timed out. Safe to
	// retry with backoff.
	CodeUnavailable Code = "unavailable"
)

// HTTPStatus maps the code to an HTTP response status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidState, CodeUnassignedUser, CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Error is the domain error type. Two domain errors match under errors.Is
// when their codes are equal.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// NewError creates a domain error with a code and message.
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError creates a domain error that wraps an underlying cause.
func WrapError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Sentinel values for errors.Is checks.
var (
	ErrInvalidArgument = NewError(CodeInvalidArgument, "invalid argument")
	ErrNotFound        = NewError(CodeNotFound, "not found")
	ErrInvalidState    = NewError(CodeInvalidState, "invalid state")
	ErrUnassignedUser  = NewError(CodeUnassignedUser, "user not assigned")
	ErrConflict        = NewError(CodeConflict, "conflict")
	ErrUnavailable     = NewError(CodeUnavailable, "store unavailable")
)
