package dynamo

import (
	"context"
	"fmt"
	"math"
)

// Run executes one complete simulation of m: initializes vars, checks
// the model's declarations for consistency, integrates the derivative
// function over the time grid [0, dt, ..., time], and rebuilds
// Solution as one named series per var and aux_var key.
//
// Solution and Times are replaced only on success; on any failure the
// previous run's result is left untouched. Param values persist across
// runs, so the interactive layer can adjust them and call Run again.
func Run(ctx context.Context, m Model) (err error) {
	b := m.Core()

	// Equation code looks up names with At, which panics on a typo in
	// a model definition. Surface that as a loud error, not a crash.
	defer func() {
		if p := recover(); p != nil {
			if pe, ok := p.(error); ok {
				err = pe
				return
			}
			err = fmt.Errorf("dynamo: model panic: %v", p)
		}
	}()

	duration, err := b.Param.Get("time")
	if err != nil {
		return err
	}
	dt, err := b.Param.Get("dt")
	if err != nil {
		return err
	}
	times, err := TimeGrid(duration, dt)
	if err != nil {
		return err
	}

	m.InitVars()
	keys := b.Var.Keys()
	if len(keys) == 0 {
		return fmt.Errorf("%w: InitVars declared no vars", ErrInconsistentModel)
	}
	if !b.Var.IsFinite() {
		return fmt.Errorf("%w: initial vars", ErrNotFinite)
	}

	if err := checkConsistency(m, keys); err != nil {
		return err
	}

	// InitVars and the consistency probe both ran, so restore the
	// declared initial values before integrating.
	m.InitVars()
	x0, err := b.Var.ToVector(keys)
	if err != nil {
		return err
	}

	f := func(t float64, x []float64) (dx []float64, ferr error) {
		defer func() {
			if p := recover(); p != nil {
				if pe, ok := p.(error); ok {
					ferr = &RunError{Time: t, Wrapped: pe}
					return
				}
				ferr = &RunError{Time: t, Wrapped: fmt.Errorf("model panic: %v", p)}
			}
		}()

		if err := b.Var.FromVector(keys, x); err != nil {
			return nil, err
		}
		m.CalcAuxVars(t)
		b.DVar.Clear()
		b.DVar.Zero(keys)
		m.CalcDVars(t)
		return b.DVar.ToVector(keys)
	}

	rows, err := b.Integrator.Integrate(ctx, f, x0, times)
	if err != nil {
		return err
	}

	sol := NewTimeseries()
	for j, key := range keys {
		for i := range times {
			sol.Append(key, rows[i][j])
		}
	}

	// aux_var is not part of the integrated state vector, so rebuild
	// its series by re-running CalcAuxVars against each output row.
	for i, t := range times {
		if err := b.Var.FromVector(keys, rows[i]); err != nil {
			return err
		}
		m.CalcAuxVars(t)
		for _, key := range b.AuxVar.Keys() {
			if !sol.Has(key) || len(sol.Series(key)) == i {
				sol.Append(key, b.AuxVar.At(key))
			}
		}
	}

	b.Solution = sol
	b.Times = times
	b.varKeys = keys
	return nil
}

// VarKeys returns the var key order locked by the most recent run.
func (b *Base) VarKeys() []string {
	out := make([]string, len(b.varKeys))
	copy(out, b.varKeys)
	return out
}

// TimeGrid builds the output grid [0, dt, 2dt, ..., duration]. A zero
// duration yields the single point 0.
func TimeGrid(duration, dt float64) ([]float64, error) {
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("%w: time=%g", ErrBadTimeGrid, duration)
	}
	if dt <= 0 || math.IsNaN(dt) {
		return nil, fmt.Errorf("%w: dt=%g", ErrBadTimeGrid, dt)
	}

	n := int(math.Floor(duration/dt + 1e-9))
	times := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		times[i] = float64(i) * dt
	}
	return times, nil
}

// checkConsistency probes the model once at t=0 and verifies that every
// declared name resolves: dvar keys against var keys, flow endpoints and
// magnitudes, plot vars and fns, and editable param keys.
func checkConsistency(m Model, keys []string) error {
	b := m.Core()

	m.CalcAuxVars(0)
	b.DVar.Clear()
	b.DVar.Zero(keys)
	m.CalcDVars(0)

	for _, k := range b.DVar.Keys() {
		if !b.Var.Has(k) {
			return fmt.Errorf("%w: dvar %q has no matching var", ErrInconsistentModel, k)
		}
	}

	for _, f := range b.AuxVarFlows {
		if !b.Var.Has(f.From) {
			return fmt.Errorf("%w: flow source %q not in var", ErrInconsistentModel, f.From)
		}
		if !b.Var.Has(f.To) {
			return fmt.Errorf("%w: flow destination %q not in var", ErrInconsistentModel, f.To)
		}
		if !b.AuxVar.Has(f.Via) && !b.Var.Has(f.Via) {
			return fmt.Errorf("%w: flow magnitude %q in neither aux_var nor var", ErrInconsistentModel, f.Via)
		}
	}
	for _, f := range b.ParamFlows {
		if !b.Var.Has(f.From) {
			return fmt.Errorf("%w: flow source %q not in var", ErrInconsistentModel, f.From)
		}
		if !b.Var.Has(f.To) {
			return fmt.Errorf("%w: flow destination %q not in var", ErrInconsistentModel, f.To)
		}
		if !b.Param.Has(f.Via) {
			return fmt.Errorf("%w: flow magnitude %q not in param", ErrInconsistentModel, f.Via)
		}
	}

	for _, p := range b.Plots {
		for _, v := range p.Vars {
			if !b.Var.Has(v) && !b.AuxVar.Has(v) {
				return fmt.Errorf("%w: plot %q references %q, which is in neither var nor aux_var",
					ErrInconsistentModel, p.Title, v)
			}
		}
		if p.Fn != "" && !b.Fns.Has(p.Fn) {
			return fmt.Errorf("%w: plot %q references unknown fn %q", ErrInconsistentModel, p.Title, p.Fn)
		}
	}

	for _, p := range b.EditableParams {
		if !b.Param.Has(p.Key) {
			return fmt.Errorf("%w: editable param %q not in param", ErrInconsistentModel, p.Key)
		}
	}

	return nil
}
