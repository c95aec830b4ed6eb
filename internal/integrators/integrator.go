// Package integrators provides numerical ODE integration over a fixed
// output time grid. The caller supplies a derivative function in plain
// vector form; how the state vector maps back to named variables is the
// caller's concern.
package integrators

import (
	"context"
	"errors"
	"math"
)

// Derivative evaluates dx/dt at (t, x). Integrators may call it many
// times per output interval and at probing time values outside the
// eventual output order, so it must be safe to re-invoke with any t.
type Derivative func(t float64, x []float64) ([]float64, error)

// Integrator solves x' = f(t, x) from x0 across the given output
// times, returning one state row per output time. times must be
// strictly increasing; a single-element grid returns x0 unchanged.
type Integrator interface {
	Name() string
	Integrate(ctx context.Context, f Derivative, x0 []float64, times []float64) ([][]float64, error)
}

var (
	// ErrStepTooSmall indicates the adaptive step shrank below the
	// floor without meeting the error tolerance.
	ErrStepTooSmall = errors.New("integrators: adaptive step below minimum")

	// ErrNonFinite indicates a NaN or Inf appeared in the state or a
	// derivative evaluation.
	ErrNonFinite = errors.New("integrators: non-finite value in state or derivative")

	// ErrEmptyGrid indicates an empty output time grid.
	ErrEmptyGrid = errors.New("integrators: empty time grid")
)

func isFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func clone(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
