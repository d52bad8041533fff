package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a bridge failure. The command layer maps every error to
// the JSON error envelope; the kind decides nothing about formatting, it
// exists so callers can distinguish a missing item from a host refusal
// without string matching.
type Kind string

const (
	// KindPermissionDenied means the host capability was not granted.
	// Fatal for the command; the host will not re-prompt within this
	// process lifetime.
	KindPermissionDenied Kind = "permission_denied"

	// KindScopeNotFound means an account or container name did not
	// resolve to any handle.
	KindScopeNotFound Kind = "scope_not_found"

	// KindItemNotFound means a title or id was not found in any
	// resolved scope.
	KindItemNotFound Kind = "item_not_found"

	// KindTimeout means the host did not respond within the bound.
	// Applies to both the grant wait and subprocess invocations.
	KindTimeout Kind = "timeout"

	// KindNativeFailure means the store reported an error distinct
	// from not-found, e.g. a save conflict.
	KindNativeFailure Kind = "native_failure"

	// KindInjectionRejected means a caller-supplied string could not be
	// made safe for the automation script. This guards the escaping
	// invariant; well-formed input never produces it.
	KindInjectionRejected Kind = "injection_rejected"
)

// Error is the bridge error type. Msg, when set, is the user-visible
// message placed verbatim in the JSON envelope.
type Error struct {
	// ErrKind classifies the failure
	ErrKind Kind

	// Op is the operation that failed (e.g. "delete-event", "search")
	Op string

	// Msg is the user-visible message; when empty, the wrapped error
	// provides the text
	Msg string

	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %v", e.Op, e.Err)
		}
		return e.Err.Error()
	}
	return string(e.ErrKind)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an error of the given kind with a user-visible message.
func New(kind Kind, op, msg string) *Error {
	return &Error{ErrKind: kind, Op: op, Msg: msg}
}

// Newf is New with fmt.Sprintf formatting of the message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{ErrKind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an error of the given kind wrapping err.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{ErrKind: kind, Op: op, Err: err}
}

// KindOf returns the kind of err, or KindNativeFailure when err carries
// no bridge classification.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.ErrKind
	}
	return KindNativeFailure
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.ErrKind == kind
}
