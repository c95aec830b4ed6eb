package models

import (
	"github.com/san-kum/modeldrop/internal/dynamo"
)

// Epidemic is the standard three-compartment SIR model. People move
// susceptible -> infectious through the force of infection and
// infectious -> recovered at the recovery rate, so both transfers are
// declared as conserved flows.
type Epidemic struct {
	dynamo.Base
}

func NewEpidemic() *Epidemic {
	m := &Epidemic{}
	m.Init("epidemic")
	m.Setup()
	return m
}

func (m *Epidemic) Setup() {
	m.Param.Set("time", 300)
	m.Param.Set("dt", 1)
	m.Param.Set("initialPopulation", 50000)
	m.Param.Set("initialPrevalence", 3000)
	m.Param.Set("reproductionNumber", 1.5)
	m.Param.Set("infectiousPeriod", 10)
	m.Param.Set("recoverRate", 0.1)

	m.AuxVarFlows = []dynamo.Flow{
		{From: "susceptible", To: "infectious", Via: "rateForce"},
	}
	m.ParamFlows = []dynamo.Flow{
		{From: "infectious", To: "recovered", Via: "recoverRate"},
	}

	m.Plots = []dynamo.Plot{
		{
			Title: "Populations",
			Vars:  []string{"susceptible", "infectious", "recovered"},
			Markdown: "The SIR model tracks three compartments. The force of " +
				"infection moves people from susceptible to infectious, and " +
				"recovery moves them on at 1/infectiousPeriod, so the total " +
				"population is conserved.",
		},
		{
			Title: "Effective Reproduction Number",
			Vars:  []string{"rn"},
		},
	}
	m.EditableParams = []dynamo.EditableParam{
		{Key: "time", Max: 1000},
		{Key: "infectiousPeriod", Max: 100},
		{Key: "reproductionNumber", Max: 15},
		{Key: "initialPrevalence", Max: 100000},
		{Key: "initialPopulation", Max: 100000},
	}
}

func (m *Epidemic) InitVars() {
	m.Param.Set("recoverRate", 1/m.Param.At("infectiousPeriod"))
	m.Param.Set("contactRate", m.Param.At("reproductionNumber")*m.Param.At("recoverRate"))

	m.Var.Set("susceptible", m.Param.At("initialPopulation")-m.Param.At("initialPrevalence"))
	m.Var.Set("infectious", m.Param.At("initialPrevalence"))
	m.Var.Set("recovered", 0)
}

func (m *Epidemic) CalcAuxVars(t float64) {
	population := m.Var.Sum()
	m.AuxVar.Set("population", population)
	m.AuxVar.Set("rateForce", m.Param.At("contactRate")/population*m.Var.At("infectious"))
	m.AuxVar.Set("rn", m.Var.At("susceptible")/population*m.Param.At("reproductionNumber"))
}

func (m *Epidemic) CalcDVars(t float64) {
	m.AddFlowsToDVars()
}
