package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a remote operation did not succeed.
type FailureKind string

// Failure kinds. Each operation only returns the kinds it documents.
const (
	FailureUnauthenticated FailureKind = "unauthenticated"
	FailureOther           FailureKind = "other"
	FailureTimeout         FailureKind = "timeout"
	FailureCancelled       FailureKind = "cancelled"
)

// String returns the string representation.
func (k FailureKind) String() string {
	return string(k)
}

// sentinel returns the error value this kind matches with errors.Is.
func (k FailureKind) sentinel() error {
	switch k {
	case FailureUnauthenticated:
		return ErrUnauthenticated
	case FailureTimeout:
		return ErrTimeout
	case FailureCancelled:
		return ErrCancelled
	default:
		return ErrOther
	}
}

// Failure is a classified failure of a remote operation.
// Err carries the underlying cause, if any, for logs.
type Failure struct {
	Op   string
	Kind FailureKind
	Err  error
}

// NewFailure returns a Failure for op.
func NewFailure(op string, kind FailureKind, cause error) *Failure {
	return &Failure{Op: op, Kind: kind, Err: cause}
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Op, f.Kind.sentinel(), f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Op, f.Kind.sentinel())
}

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Is matches the sentinel error for the failure's kind.
func (f *Failure) Is(target error) bool {
	return target == f.Kind.sentinel()
}

// KindOf returns the failure kind of err, or "" if err is not a Failure.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}
