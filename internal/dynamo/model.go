package dynamo

import (
	"github.com/san-kum/modeldrop/internal/integrators"
)

// Model is the contract a concrete dynamical model implements. Base
// supplies no-op defaults for every hook, so a model overrides only the
// hooks it needs.
//
// Setup populates param and declares plots, flows and editable params.
// InitVars populates the initial var values from param; the var keys it
// declares are the authoritative state vector for the run. CalcAuxVars
// computes aux_var from the current var and param; it must be a pure
// function of those containers, because the runner re-invokes it after
// integration to reconstruct aux series. CalcDVars computes a
// derivative for every var key, optionally via AddFlowsToDVars.
type Model interface {
	Core() *Base
	Setup()
	InitVars()
	CalcAuxVars(t float64)
	CalcDVars(t float64)
}

// Base owns the named containers and descriptors of a model. Concrete
// models embed Base and write their equations against its fields.
type Base struct {
	Name string

	Var    *State
	DVar   *State
	AuxVar *State
	Param  *State
	Fns    *Fns

	AuxVarFlows []Flow
	ParamFlows  []Flow

	Plots          []Plot
	EditableParams []EditableParam

	// Integrator performs the vector integration. Defaults to RK45.
	Integrator integrators.Integrator

	// Solution and Times hold the result of the most recent completed
	// run: one series per var key, then one per aux_var key.
	Solution *Timeseries
	Times    []float64

	// varKeys is the locked var order for the run in progress.
	varKeys []string
}

// Init prepares the containers. Every concrete model constructor calls
// Init and then Setup.
func (b *Base) Init(name string) {
	b.Name = name
	b.Var = NewState()
	b.DVar = NewState()
	b.AuxVar = NewState()
	b.Param = NewState()
	b.Fns = NewFns()
	b.Solution = NewTimeseries()
	b.Integrator = integrators.NewRK45()

	b.Param.Set("time", 100)
	b.Param.Set("dt", 1)
}

// Core makes any type embedding Base satisfy the Model interface's
// accessor. (A method named Base would be shadowed by the embedded
// field name and never promoted.)
func (b *Base) Core() *Base { return b }

// Default hooks; concrete models override the ones they use.
func (b *Base) Setup()                {}
func (b *Base) InitVars()             {}
func (b *Base) CalcAuxVars(t float64) {}
func (b *Base) CalcDVars(t float64)   {}
