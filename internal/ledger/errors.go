package ledger

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// KindUnknown is reported for errors that did not originate in the ledger,
	// such as storage faults.
	KindUnknown Kind = "UNKNOWN"

	// KindUnauthorized is reserved. No operation produces it today because every
	// write is confined to the caller's own key space.
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindNotFound           Kind = "NOT_FOUND"
	KindAlreadyExists      Kind = "ALREADY_EXISTS"
	KindInvalidInput       Kind = "INVALID_INPUT"
	KindInvalidVisibility  Kind = "INVALID_VISIBILITY"
	KindInvalidProficiency Kind = "INVALID_PROFICIENCY"
)

// Error is a domain error returned by ledger operations.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *Error of the same kind, so callers can compare against the
// sentinel values below with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "not found"}
	ErrAlreadyExists      = &Error{Kind: KindAlreadyExists, Message: "already exists"}
	ErrInvalidInput       = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrInvalidVisibility  = &Error{Kind: KindInvalidVisibility, Message: "invalid visibility"}
	ErrInvalidProficiency = &Error{Kind: KindInvalidProficiency, Message: "invalid proficiency"}
)

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind from any error.
// Returns KindUnknown if the error is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
