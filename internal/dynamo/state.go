package dynamo

import (
	"fmt"
	"math"
)

// State is an insertion-ordered mapping from variable name to value.
// It backs the var, dvar, aux_var and param containers of a model and
// projects to and from the plain vectors an integrator works with.
type State struct {
	keys  []string
	index map[string]int
	vals  []float64
}

func NewState() *State {
	return &State{index: make(map[string]int)}
}

// Set inserts key or overwrites its value, keeping the original
// insertion position on overwrite.
func (s *State) Set(key string, value float64) {
	if i, ok := s.index[key]; ok {
		s.vals[i] = value
		return
	}
	s.index[key] = len(s.keys)
	s.keys = append(s.keys, key)
	s.vals = append(s.vals, value)
}

// Get returns the value at key, or ErrUnknownKey.
func (s *State) Get(key string) (float64, error) {
	i, ok := s.index[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return s.vals[i], nil
}

// At returns the value at key, panicking on an undeclared key.
// Equation code uses At; Run recovers the panic into an error, so a
// typo in a model definition surfaces as a loud failure rather than a
// silent zero.
func (s *State) At(key string) float64 {
	i, ok := s.index[key]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnknownKey, key))
	}
	return s.vals[i]
}

// Add adds delta to the value at key, panicking on an undeclared key.
// Flow application relies on this being additive, never assignment.
func (s *State) Add(key string, delta float64) {
	i, ok := s.index[key]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnknownKey, key))
	}
	s.vals[i] += delta
}

func (s *State) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

func (s *State) Len() int {
	return len(s.keys)
}

// Keys returns the declared names in insertion order.
func (s *State) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Sum returns the sum of all values.
func (s *State) Sum() float64 {
	total := 0.0
	for _, v := range s.vals {
		total += v
	}
	return total
}

// Zero sets every named key to zero, declaring any that are missing.
func (s *State) Zero(keys []string) {
	for _, k := range keys {
		s.Set(k, 0)
	}
}

// Clear forgets all keys and values.
func (s *State) Clear() {
	s.keys = s.keys[:0]
	s.vals = s.vals[:0]
	s.index = make(map[string]int)
}

// ToVector projects the values at the given keys, in that order.
func (s *State) ToVector(order []string) ([]float64, error) {
	out := make([]float64, len(order))
	for i, k := range order {
		j, ok := s.index[k]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, k)
		}
		out[i] = s.vals[j]
	}
	return out, nil
}

// FromVector overwrites the values at the given keys from a same-length
// vector, declaring any keys that are missing.
func (s *State) FromVector(order []string, values []float64) error {
	if len(order) != len(values) {
		return fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, len(order), len(values))
	}
	for i, k := range order {
		s.Set(k, values[i])
	}
	return nil
}

func (s *State) Clone() *State {
	c := NewState()
	for i, k := range s.keys {
		c.Set(k, s.vals[i])
	}
	return c
}

// IsFinite reports whether every value is finite.
func (s *State) IsFinite() bool {
	for _, v := range s.vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Fns is an insertion-ordered mapping from name to scalar function,
// backing the fn container used by models with tabulated or shaped
// response curves.
type Fns struct {
	keys  []string
	index map[string]func(float64) float64
}

func NewFns() *Fns {
	return &Fns{index: make(map[string]func(float64) float64)}
}

func (f *Fns) Set(key string, fn func(float64) float64) {
	if _, ok := f.index[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.index[key] = fn
}

// At returns the function at key, panicking on an undeclared key.
func (f *Fns) At(key string) func(float64) float64 {
	fn, ok := f.index[key]
	if !ok {
		panic(fmt.Errorf("%w: fn %q", ErrUnknownKey, key))
	}
	return fn
}

func (f *Fns) Has(key string) bool {
	_, ok := f.index[key]
	return ok
}

func (f *Fns) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}
