// Package apperr defines the error taxonomy shared by services,
// the authorization engine, and HTTP handlers. Every error carries
// the HTTP status it should surface as.
package apperr

import (
	"errors"
	"fmt"
)

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// NotFound marks a resource id that does not resolve to a live row.
// Never conflated with an authorization failure.
func NotFound(resource string) *Error {
	return &Error{Status: 404, Message: resource + " not found"}
}

// Forbidden marks an authenticated request that failed a permission
// or ownership-scope check on an existing resource.
func Forbidden(message string) *Error {
	return &Error{Status: 403, Message: message}
}

func Forbiddenf(format string, args ...interface{}) *Error {
	return &Error{Status: 403, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized covers every token or identity failure uniformly;
// callers must not be able to tell an expired token from a forged one.
func Unauthorized(message string) *Error {
	return &Error{Status: 401, Message: message}
}

func Validation(message string) *Error {
	return &Error{Status: 400, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Status: 409, Message: message}
}

// StatusOf extracts the HTTP status from err, defaulting to 500
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 500
}
