package models

import (
	"github.com/san-kum/modeldrop/internal/dynamo"
)

// Growth contrasts unconstrained exponential growth with the logistic
// equation, where crowding throttles the growth rate as the population
// approaches the carrying capacity.
type Growth struct {
	dynamo.Base
}

func NewGrowth() *Growth {
	m := &Growth{}
	m.Init("growth")
	m.Setup()
	return m
}

func (m *Growth) Setup() {
	m.Param.Set("time", 400)
	m.Param.Set("dt", 1)
	m.Param.Set("growthRate", 0.035)
	m.Param.Set("carryingCapacity", 1e3)

	m.Plots = []dynamo.Plot{
		{
			Title:    "Exponential Growth",
			Vars:     []string{"population"},
			Markdown: "Every population model has exponential growth at its heart; without constraint it grows without limit.",
		},
		{
			Title:    "Resource Constrained",
			Vars:     []string{"constrainedPopulation"},
			Markdown: "The logistic equation reduces the growth rate by crowding as the population approaches the carrying capacity.",
		},
	}
	if err := m.ExtractEditableParams(); err != nil {
		panic(err)
	}
}

func (m *Growth) InitVars() {
	m.Var.Set("population", 10)
	m.Var.Set("constrainedPopulation", 10)
}

func (m *Growth) CalcDVars(t float64) {
	rate := m.Param.At("growthRate")
	m.DVar.Set("population", rate*m.Var.At("population"))

	p := m.Var.At("constrainedPopulation")
	m.DVar.Set("constrainedPopulation", rate*p*(1-p/m.Param.At("carryingCapacity")))
}
