// Package status defines the closed set of top-level outcomes a
// packrat operation can report (spec §7), independent of the
// diagnostics emitted along the way.
package status

import (
	"errors"
	"fmt"
)

// Status is the caller-visible outcome of a build/validate/runtime
// operation, mirroring original_source's pr_status_t.
type Status int

const (
	OK Status = iota
	InvalidArgument
	IOError
	ParseError
	ValidationError
	AllocationFailed
	InternalError
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case InvalidArgument:
		return "invalid argument"
	case IOError:
		return "io error"
	case ParseError:
		return "parse error"
	case ValidationError:
		return "validation error"
	case AllocationFailed:
		return "allocation failed"
	case InternalError:
		return "internal error"
	default:
		return "unknown status"
	}
}

// ExitCode maps a Status onto the CLI exit codes from spec §6.1.
func (s Status) ExitCode() int {
	switch s {
	case OK:
		return 0
	case InvalidArgument:
		return 1
	case ParseError, ValidationError:
		return 2
	case IOError:
		return 3
	default:
		return 4
	}
}

// Error wraps an underlying error with a Status, so callers can branch
// on outcome class without string-matching messages.
type Error struct {
	Status Status
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Status.String()
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error from a status and a formatted message.
func New(s Status, format string, args ...any) *Error {
	return &Error{Status: s, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a Status to an existing error. If err is nil, Wrap
// returns nil.
func Wrap(s Status, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Status: s, Err: err}
}

// Of extracts the Status from err, defaulting to InternalError for any
// error that isn't a *Error (a programming mistake by spec's own
// definition: INTERNAL_ERROR is reserved for "should never reach a
// user in a correct implementation").
func Of(err error) Status {
	if err == nil {
		return OK
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Status
	}
	return InternalError
}
