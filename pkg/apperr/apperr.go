// Package apperr provides the classified errors surfaced by privileged
// operations and trigger handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the failure class of an operation.
type Code string

const (
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodePermissionDenied   Code = "PERMISSION_DENIED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeInternal           Code = "INTERNAL"
)

// Error is a classified application error with a human-readable message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func Unauthenticated(message string) *Error {
	return New(CodeUnauthenticated, message)
}

func PermissionDenied(message string) *Error {
	return New(CodePermissionDenied, message)
}

func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func FailedPrecondition(message string) *Error {
	return New(CodeFailedPrecondition, message)
}

func Unavailable(message string, err error) *Error {
	return Wrap(CodeUnavailable, message, err)
}

// CodeOf extracts the classification of err, or CodeInternal for
// unclassified errors.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// MessageOf returns the human-readable message of a classified error, or a
// generic message for unclassified ones so internals never leak to callers.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}

// HTTPStatus maps a classified error to the HTTP status of the rejected call.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
