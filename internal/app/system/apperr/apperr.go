// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy every service operation reports
// through. Errors of these kinds bubble unchanged from stores and policies to
// the HTTP boundary; no layer in between swallows or downgrades them.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for boundary mapping.
type Kind int

const (
	// Internal is any unexpected persistence/upload failure. Its detail is
	// logged but not sent to callers in production.
	Internal Kind = iota
	// Validation is a malformed or missing field in the request.
	Validation
	// Unauthenticated means no usable identity (missing/invalid/expired token).
	Unauthenticated
	// Forbidden means the caller is authenticated but the action is denied.
	Forbidden
	// NotFound means the target entity does not exist.
	NotFound
	// Conflict is a uniqueness violation (e.g. duplicate reaction insert race).
	Conflict
	// RateLimited means the caller has exceeded a request limit and should
	// back off.
	RateLimited
)

// Error carries a kind, a caller-safe message, and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an error of the given kind.
func E(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap attaches a cause to an error of the given kind.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf extracts the kind from err; anything that is not an *Error is
// Internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
