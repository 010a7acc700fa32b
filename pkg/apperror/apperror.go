// Package apperror defines the single error taxonomy returned by services.
// Every error carries the HTTP status it should be reported with.
package apperror

import (
	"errors"
	"net/http"
)

// Kind names the category of an application error.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindAuth          Kind = "auth"
	KindAuthorization Kind = "authorization"
	KindConflict      Kind = "conflict"
	KindStorage       Kind = "storage"
	KindUnavailable   Kind = "unavailable"
)

// Error is a failure with a status code and a client-facing message.
// Err holds the underlying cause, which is logged but never sent to clients.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WithDetails returns a copy of e carrying field-level details.
func (e *Error) WithDetails(details map[string]string) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Code: http.StatusUnprocessableEntity, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Code: http.StatusNotFound, Message: msg}
}

func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Code: http.StatusUnauthorized, Message: msg}
}

func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Code: http.StatusUnauthorized, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Code: http.StatusBadRequest, Message: msg}
}

func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Code: http.StatusInternalServerError, Message: msg, Err: err}
}

func Unavailable(msg string) *Error {
	return &Error{Kind: KindUnavailable, Code: http.StatusServiceUnavailable, Message: msg}
}

// InvalidInput is the message used for every binding failure.
const InvalidInput = "Invalid inputs passed, please check your data."

// As extracts an *Error from err, if any.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, k Kind) bool {
	ae, ok := As(err)
	return ok && ae.Kind == k
}
