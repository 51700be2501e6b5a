// Package apperrors classifies service failures into the statuses the HTTP
// boundary surfaces to callers. Services return *Error values; anything else
// that escapes is downgraded to InternalError at the boundary.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Status is the classification attached to a service failure.
type Status int

const (
	StatusUnauthorized Status = iota
	StatusBadRequest
	StatusNotFound
	StatusInternal
)

// HTTPStatus maps a Status to its HTTP status code.
func (s Status) HTTPStatus() int {
	switch s {
	case StatusUnauthorized:
		return http.StatusUnauthorized
	case StatusBadRequest:
		return http.StatusBadRequest
	case StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s Status) String() string {
	switch s {
	case StatusUnauthorized:
		return "unauthorized"
	case StatusBadRequest:
		return "bad request"
	case StatusNotFound:
		return "not found"
	default:
		return "internal error"
	}
}

// Error is a classified failure. Message is user-visible; cause is not.
type Error struct {
	Status  Status
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Status, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Unauthorizedf(format string, args ...interface{}) *Error {
	return &Error{Status: StatusUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func BadRequestf(format string, args ...interface{}) *Error {
	return &Error{Status: StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Status: StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internalf wraps an unexpected failure. The cause stays server-side; callers
// only ever see the message.
func Internalf(cause error, format string, args ...interface{}) *Error {
	return &Error{Status: StatusInternal, Message: fmt.Sprintf(format, args...), cause: cause}
}

// StatusOf extracts the classification from err, defaulting to internal for
// unclassified errors.
func StatusOf(err error) Status {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return StatusInternal
}

// MessageOf returns the user-visible message for err. Unclassified errors get
// a generic message so internals never leak to callers.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
