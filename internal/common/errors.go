package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// Code classifies an Error. The HTTP layer maps each code to one status.
type Code string

const (
	CodeValidation   Code = "validation"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeInternal     Code = "internal"
)

// Error is the service-level error returned to handlers. Message is safe to
// show to clients; Cause is only logged.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code, so callers can
// write errors.Is(err, common.ErrUnauthorized).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code && (t.Message == "" || t.Message == e.Message)
	}
	return false
}

// Code-only values for errors.Is matching.
var (
	ErrValidation   = &Error{Code: CodeValidation}
	ErrConflict     = &Error{Code: CodeConflict}
	ErrUnauthorized = &Error{Code: CodeUnauthorized}
	ErrNotFound     = &Error{Code: CodeNotFound}
	ErrInternal     = &Error{Code: CodeInternal}
)

func NewValidationError(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

func NewConflictError(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

func NewUnauthorizedError(msg string, cause error) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg, Cause: cause}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NewInternalError wraps an unexpected failure, usually a store error.
func NewInternalError(msg string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: msg, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the client-facing message of the first *Error in err's
// chain, or the empty string.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
