// Package wheelerr defines the error taxonomy shared by every sieve
// stage and the CLI: InputError, ResourceError, IOError, and
// InternalInvariantError, as one Kind-tagged Error type. Resource, IO
// and Internal errors wrap a github.com/pkg/errors value that records a
// stack trace even when the CLI's quiet mode suppresses everything but
// the final exit code; Input errors carry only their message.
package wheelerr

import "github.com/pkg/errors"

// Kind classifies a wheelsieve error for exit-code and reporting
// purposes.
type Kind int

const (
	// KindInput marks unparseable or out-of-range bounds, bad
	// ordering, or a sum request above the 64-bit-safe limit.
	KindInput Kind = iota
	// KindResource marks an allocation failure for is_prime, the
	// pre-sieve template, or a segment.
	KindResource
	// KindIO marks a failed write to the output sink.
	KindIO
	// KindInternal marks a programming-error invariant violation
	// (non-wheel step size, out-of-range segment indices).
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindResource:
		return "resource"
	case KindIO:
		return "io"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a wheelsieve error carrying a Kind alongside the wrapped
// cause.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Input builds a KindInput error.
func Input(format string, args ...interface{}) error {
	return &Error{Kind: KindInput, msg: errors.Errorf(format, args...).Error()}
}

// Resource wraps an allocation failure, naming the target that failed
// to allocate.
func Resource(target string, size int, cause error) error {
	return &Error{
		Kind: KindResource,
		msg:  errors.Errorf("allocate %s (%d bits)", target, size).Error(),
		err:  errors.WithStack(cause),
	}
}

// IO wraps a failed write to an output sink.
func IO(cause error) error {
	return &Error{Kind: KindIO, msg: "write to output sink", err: errors.WithStack(cause)}
}

// Internal builds a KindInternal error for a violated invariant. These
// indicate a programming error and should abort immediately.
func Internal(format string, args ...interface{}) error {
	return &Error{Kind: KindInternal, msg: errors.Errorf(format, args...).Error(), err: errors.New("invariant violated")}
}

// ExitCode maps an error to the process exit code convention:
// input/validation errors and all other errors exit >1. Only the
// "no primes found" condition (handled by the caller, not an error at
// all) exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 2
}
