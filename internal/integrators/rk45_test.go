package integrators

import (
	"context"
	"errors"
	"math"
	"testing"
)

// harmonic oscillator: x'' = -x, analytic solution cos(t).
func harmonic(t float64, x []float64) ([]float64, error) {
	return []float64{x[1], -x[0]}, nil
}

func decay(t float64, x []float64) ([]float64, error) {
	return []float64{-0.1 * x[0]}, nil
}

func grid(duration, dt float64) []float64 {
	n := int(duration/dt + 1e-9)
	times := make([]float64, n+1)
	for i := range times {
		times[i] = float64(i) * dt
	}
	return times
}

func TestRK45_Decay(t *testing.T) {
	r := NewRK45()
	rows, err := r.Integrate(context.Background(), decay, []float64{100}, grid(10, 1))
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(rows))
	}
	if rows[0][0] != 100 {
		t.Errorf("first row must be the initial state, got %f", rows[0][0])
	}

	want := 100 * math.Exp(-1)
	if math.Abs(rows[10][0]-want) > 1e-4 {
		t.Errorf("expected %f at t=10, got %f", want, rows[10][0])
	}
}

func TestRK45_HarmonicAccuracy(t *testing.T) {
	r := NewRK45()
	rows, err := r.Integrate(context.Background(), harmonic, []float64{1, 0}, grid(10, 0.1))
	if err != nil {
		t.Fatal(err)
	}

	last := rows[len(rows)-1]
	if math.Abs(last[0]-math.Cos(10)) > 1e-4 {
		t.Errorf("expected cos(10)=%f, got %f", math.Cos(10), last[0])
	}

	// Energy of the oscillator should be conserved to tolerance.
	energy := 0.5 * (last[0]*last[0] + last[1]*last[1])
	if math.Abs(energy-0.5) > 1e-4 {
		t.Errorf("energy drifted: %f", energy)
	}
}

func TestRK45_SinglePointGrid(t *testing.T) {
	r := NewRK45()
	rows, err := r.Integrate(context.Background(), decay, []float64{42}, []float64{0})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0][0] != 42 {
		t.Errorf("single-point grid must return the initial state, got %v", rows)
	}
}

func TestRK45_EmptyGrid(t *testing.T) {
	r := NewRK45()
	_, err := r.Integrate(context.Background(), decay, []float64{1}, nil)
	if !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}
}

func TestRK45_NonFiniteDerivative(t *testing.T) {
	r := NewRK45()
	f := func(t float64, x []float64) ([]float64, error) {
		return []float64{math.NaN()}, nil
	}
	_, err := r.Integrate(context.Background(), f, []float64{1}, grid(1, 0.1))
	if !errors.Is(err, ErrNonFinite) {
		t.Errorf("expected ErrNonFinite, got %v", err)
	}
}

func TestRK45_DerivativeErrorPropagates(t *testing.T) {
	r := NewRK45()
	boom := errors.New("boom")
	f := func(t float64, x []float64) ([]float64, error) {
		return nil, boom
	}
	_, err := r.Integrate(context.Background(), f, []float64{1}, grid(1, 0.1))
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped boom, got %v", err)
	}
}

func TestRK45_ContextCancel(t *testing.T) {
	r := NewRK45()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Integrate(ctx, decay, []float64{1}, grid(10, 1))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRK45_StiffStepUnderflow(t *testing.T) {
	r := NewRK45()
	r.MinStep = 1e-3

	// Finite-time blowup forces the step below MinStep.
	f := func(t float64, x []float64) ([]float64, error) {
		return []float64{1e12 * x[0] * x[0]}, nil
	}
	_, err := r.Integrate(context.Background(), f, []float64{1}, grid(10, 1))
	if err == nil {
		t.Fatal("expected failure on blowup")
	}
}
