package errs

import (
	stderrs "errors"
	"fmt"
)

// Op identifies the operation that produced an error, typically
// "package.Function".
type Op string

// DetailedError carries an operation identifier, a human-readable message
// and an optional cause. It participates in both the builder chain below
// and stdlib errors.Unwrap traversal.
type DetailedError struct {
	op    Op
	msg   string
	cause error
}

// New starts a DetailedError for the given operation. Finish the builder
// with Msg or Errorf; Err attaches the cause.
func New(op Op) *DetailedError {
	return &DetailedError{op: op}
}

// Err attaches the underlying cause.
func (e *DetailedError) Err(err error) *DetailedError {
	e.cause = err
	return e
}

// Msg sets the message and returns the finished error.
func (e *DetailedError) Msg(msg string) *DetailedError {
	e.msg = msg
	return e
}

// Errorf sets the message from a format string and returns the finished
// error. A %w verb wraps its operand as the cause, matching fmt.Errorf.
func (e *DetailedError) Errorf(format string, args ...interface{}) *DetailedError {
	wrapped := fmt.Errorf(format, args...)
	e.msg = wrapped.Error()
	if cause := stderrs.Unwrap(wrapped); cause != nil {
		e.cause = cause
	}
	return e
}

func (e *DetailedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return string(e.op)
}

// Op returns the operation identifier.
func (e *DetailedError) Op() Op {
	if e == nil {
		return ""
	}
	return e.op
}

// Cause returns the underlying cause, or nil.
func (e *DetailedError) Cause() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Unwrap supports errors.Is / errors.As traversal.
func (e *DetailedError) Unwrap() error {
	return e.Cause()
}

// AsDetailedError reports whether err itself is a DetailedError. It
// deliberately does not unwrap: chain walkers rely on seeing each layer,
// including plain wrapping layers, in order.
func AsDetailedError(err error) (*DetailedError, bool) {
	d, ok := err.(*DetailedError)
	return d, ok
}
