package integrators

import (
	"context"
	"fmt"
)

// Euler is a fixed-step forward-Euler integrator taking exactly one
// step per output interval. Useful for cross-checking the adaptive
// stepper and for models where the grid spacing already resolves the
// dynamics.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Integrate(ctx context.Context, f Derivative, x0 []float64, times []float64) ([][]float64, error) {
	if len(times) == 0 {
		return nil, ErrEmptyGrid
	}
	if !isFinite(x0) {
		return nil, fmt.Errorf("%w: initial state", ErrNonFinite)
	}

	out := make([][]float64, len(times))
	out[0] = clone(x0)

	x := clone(x0)
	for i := 1; i < len(times); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		t := times[i-1]
		h := times[i] - t

		dx, err := f(t, x)
		if err != nil {
			return nil, err
		}
		for j := range x {
			x[j] += h * dx[j]
		}
		if !isFinite(x) {
			return nil, fmt.Errorf("%w: state at t=%g", ErrNonFinite, times[i])
		}

		out[i] = clone(x)
	}

	return out, nil
}
