package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for model definition and runs.
var (
	// ErrUnknownKey indicates a lookup of an undeclared variable name.
	ErrUnknownKey = errors.New("dynamo: unknown key")

	// ErrLengthMismatch indicates a vector whose length does not match its key order.
	ErrLengthMismatch = errors.New("dynamo: vector length does not match key order")

	// ErrNotFinite indicates a NaN or Inf value where a finite one is required.
	ErrNotFinite = errors.New("dynamo: non-finite value")

	// ErrInconsistentModel indicates a model whose declarations disagree
	// (dvar/var key mismatch, flow or plot referencing an undeclared name).
	ErrInconsistentModel = errors.New("dynamo: inconsistent model definition")

	// ErrBadTimeGrid indicates a non-positive dt or negative duration.
	ErrBadTimeGrid = errors.New("dynamo: invalid time grid")
)

// RunError wraps a failure during Run with the time at which it occurred.
type RunError struct {
	Time    float64
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run failed at t=%.4f: %v", e.Time, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
