// Package errdefs defines the error kinds shared by the senxor packages.
//
// Every error returned by this module for a failed register, field or
// reader operation carries one of the kind sentinels below, so callers can
// branch with errors.Is without depending on message text:
//
//	if errors.Is(err, errdefs.ErrTransport) {
//		// retry, reconnect, ...
//	}
package errdefs

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport reports a failed round-trip with the device.
	ErrTransport = errors.New("transport error")

	// ErrValidation reports a value or name rejected before any I/O.
	ErrValidation = errors.New("validation error")

	// ErrState reports an operation invoked in the wrong lifecycle state.
	ErrState = errors.New("state error")

	// ErrBacklog reports that listener dispatch did not keep pace with
	// frame production.
	ErrBacklog = errors.New("processing backlog")
)

// Error is an error of a known kind raised by an operation on a named
// subject (a register, field or listener).
type Error struct {
	Kind    error  // one of the sentinels above
	Op      string // "read", "write", "set", "add listener", ...
	Subject string // "0xB1 FRAME_MODE", "EMISSIVITY", "listener_0", ...
	Err     error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Subject != "" {
		msg += " " + e.Subject
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", msg, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", msg, e.Kind)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New returns an *Error of the given kind.
func New(kind error, op, subject string, err error) *Error {
	return &Error{Kind: kind, Op: op, Subject: subject, Err: err}
}

// Validation returns a validation error with a formatted cause.
func Validation(op, subject, format string, args ...any) *Error {
	return New(ErrValidation, op, subject, fmt.Errorf(format, args...))
}

// Transport wraps a transport failure.
func Transport(op, subject string, err error) *Error {
	return New(ErrTransport, op, subject, err)
}

// State returns a lifecycle error with a formatted cause.
func State(op, format string, args ...any) *Error {
	return New(ErrState, op, "", fmt.Errorf(format, args...))
}

// KindOf returns the kind sentinel carried by err, or nil.
func KindOf(err error) error {
	for _, k := range []error{ErrTransport, ErrValidation, ErrState, ErrBacklog} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
