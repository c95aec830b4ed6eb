package models

import (
	"github.com/san-kum/modeldrop/internal/dynamo"
)

// Ecology is the Lotka-Volterra predator-prey model, the classic
// oscillating two-population system.
type Ecology struct {
	dynamo.Base
}

func NewEcology() *Ecology {
	m := &Ecology{}
	m.Init("ecology")
	m.Setup()
	return m
}

func (m *Ecology) Setup() {
	m.Param.Set("time", 200)
	m.Param.Set("dt", 0.2)
	m.Param.Set("initialPrey", 10)
	m.Param.Set("initialPredator", 5)
	m.Param.Set("preyBirthRate", 0.2)
	m.Param.Set("predationRate", 0.1)
	m.Param.Set("digestionRate", 0.1)
	m.Param.Set("predatorDeathRate", 0.2)

	m.Plots = []dynamo.Plot{
		{
			Title: "Ecology",
			Vars:  []string{"predator", "prey"},
			Markdown: "Prey grow at their intrinsic birth rate and are eaten " +
				"at the predation rate; predators grow by digesting prey and " +
				"die by attrition. The two populations cycle out of phase.",
		},
	}
	m.EditableParams = []dynamo.EditableParam{
		{Key: "time", Max: 300},
		{Key: "initialPrey", Max: 20},
		{Key: "initialPredator", Max: 20},
		{Key: "preyBirthRate", Max: 2},
		{Key: "predationRate", Max: 2},
		{Key: "predatorDeathRate", Max: 2},
		{Key: "digestionRate", Max: 2},
	}
}

func (m *Ecology) InitVars() {
	m.Var.Set("predator", m.Param.At("initialPredator"))
	m.Var.Set("prey", m.Param.At("initialPrey"))
}

func (m *Ecology) CalcDVars(t float64) {
	prey := m.Var.At("prey")
	predator := m.Var.At("predator")

	m.DVar.Set("prey",
		prey*m.Param.At("preyBirthRate")-m.Param.At("predationRate")*prey*predator)
	m.DVar.Set("predator",
		m.Param.At("digestionRate")*prey*predator-predator*m.Param.At("predatorDeathRate"))
}
