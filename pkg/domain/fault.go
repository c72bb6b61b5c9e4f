package domain

import (
	"errors"
	"fmt"
)

// FaultKind classifies operation failures so callers can tell a retryable
// conflict apart from a caller bug or a missing aggregate.
type FaultKind string

const (
	// FaultValidation marks input rejected before any ledger was touched.
	FaultValidation FaultKind = "validation"
	// FaultConflict marks a state clash the caller may retry around, such
	// as an occupied seat.
	FaultConflict FaultKind = "conflict"
	// FaultConsistency marks an integration error: the ledgers disagree in
	// a way no user action can cause.
	FaultConsistency FaultKind = "consistency"
	// FaultNotFound marks an unknown aggregate identifier.
	FaultNotFound FaultKind = "not_found"
)

// Fault is an error with a closed kind. Sentinel faults compare with
// errors.Is by identity; wrapped faults compare through Unwrap.
type Fault struct {
	Kind FaultKind
	Msg  string
	Err  error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return f.Msg + ": " + f.Err.Error()
	}
	return f.Msg
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// NewFault creates a sentinel fault suitable for package-level error values.
func NewFault(kind FaultKind, msg string) *Fault {
	return &Fault{Kind: kind, Msg: msg}
}

// WrapFault attaches context to a sentinel while keeping errors.Is working
// against it.
func WrapFault(sentinel *Fault, format string, args ...interface{}) error {
	return &Fault{
		Kind: sentinel.Kind,
		Msg:  fmt.Sprintf(format, args...),
		Err:  sentinel,
	}
}

// KindOf extracts the fault kind from an error chain. Errors that carry no
// Fault report an empty kind.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}
