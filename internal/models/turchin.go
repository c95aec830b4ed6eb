package models

import (
	"github.com/san-kum/modeldrop/internal/dynamo"
)

// Turchin is the Turchin demographic-state model: a population grows
// on the surplus it produces, the state taxes that surplus, and state
// revenue in turn raises the carrying capacity. Collapse follows when
// expenditure outruns the tax base.
type Turchin struct {
	dynamo.Base
}

func NewTurchin() *Turchin {
	m := &Turchin{}
	m.Init("turchin")
	m.Setup()
	return m
}

func (m *Turchin) Setup() {
	m.Param.Set("time", 500)
	m.Param.Set("dt", 1)
	m.Param.Set("maxSurplus", 1)
	m.Param.Set("taxOnSurplus", 1)
	m.Param.Set("growth", 0.02)
	m.Param.Set("expenditurePerCapita", 0.25)
	m.Param.Set("stateAtHalfCapacity", 10)
	m.Param.Set("carryCapacityDiff", 3)

	// Reads param at call time so edits between runs take effect.
	m.Fns.Set("carryCapacityFromStateRevenue", func(state float64) float64 {
		if state < 0 {
			return 1
		}
		return 1 + m.Param.At("carryCapacityDiff")*(state/(m.Param.At("stateAtHalfCapacity")+state))
	})

	m.Plots = []dynamo.Plot{
		{
			Title: "People",
			Vars:  []string{"populationDensity", "carryingCapacity"},
			Markdown: "Population rises toward a carrying capacity that state " +
				"revenue itself inflates, then overshoots once the state can " +
				"no longer fund it.",
		},
		{
			Title: "Surplus",
			Vars:  []string{"surplus"},
		},
		{
			Title: "State Revenue",
			Vars:  []string{"state"},
		},
		{
			Title: "Carrying Capacity Response",
			Fn:    "carryCapacityFromStateRevenue",
			XLims: [2]float64{0, 100},
		},
	}
	m.EditableParams = []dynamo.EditableParam{
		{Key: "time", Max: 1000},
		{Key: "maxSurplus", Max: 2},
		{Key: "taxOnSurplus", Max: 2},
		{Key: "growth", Max: 0.1},
	}
}

func (m *Turchin) InitVars() {
	m.Var.Set("populationDensity", 0.2)
	m.Var.Set("state", 0)
}

func (m *Turchin) CalcAuxVars(t float64) {
	capacity := m.Fns.At("carryCapacityFromStateRevenue")(m.Var.At("state"))
	m.AuxVar.Set("carryingCapacity", capacity)
	m.AuxVar.Set("surplus", m.Param.At("maxSurplus")*(1-m.Var.At("populationDensity")/capacity))
}

func (m *Turchin) CalcDVars(t float64) {
	density := m.Var.At("populationDensity")
	surplus := m.AuxVar.At("surplus")

	m.DVar.Set("populationDensity", m.Param.At("growth")*density*surplus)
	m.DVar.Set("state",
		m.Param.At("taxOnSurplus")*density*surplus-m.Param.At("expenditurePerCapita")*density)
}
