// Package apperr defines the error kinds surfaced by the confession pipeline
// and how they map onto HTTP status codes.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an Error
type Kind uint8

const (
	// KindUnknown is for errors that did not come through this package
	KindUnknown Kind = iota

	// KindValidation is for caller input rejected before any mutation
	KindValidation

	// KindNotFound is for a referenced identifier that does not exist
	KindNotFound

	// KindStore is for failures reported by the backing store
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error carries a kind, a caller-facing message and an optional cause
type Error struct {
	kind Kind
	msg  string
	orig error
}

// Validation returns a KindValidation error with msg
func Validation(msg string) *Error { return &Error{kind: KindValidation, msg: msg} }

// NotFound returns a KindNotFound error with msg
func NotFound(msg string) *Error { return &Error{kind: KindNotFound, msg: msg} }

// Store wraps a store failure, keeping the driver message verbatim
func Store(err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{kind: KindStore, msg: err.Error(), orig: err}
}

// Error implements error
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.msg
}

// Unwrap returns the wrapped cause, if any
func (e *Error) Unwrap() error { return e.orig }

// Kind returns the error kind
func (e *Error) Kind() Kind { return e.kind }

// Message returns the caller-facing message
func (e *Error) Message() string { return e.msg }

// Is matches another *Error by kind and message so sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == t.kind && e.msg == t.msg
}

// As finds the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindUnknown
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.kind
	}
	return KindUnknown
}

// IsKind reports whether err carries kind k
func IsKind(err error, k Kind) bool { return err != nil && KindOf(err) == k }

// HTTPStatus maps err onto a response status code
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
