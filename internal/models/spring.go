package models

import (
	"math"

	"github.com/san-kum/modeldrop/internal/dynamo"
)

// Spring is the elastic oscillator x'' = -(2*pi/period)^2 * x, split
// into two first-order equations. The cleanest periodic cycle a
// dynamical model can produce.
type Spring struct {
	dynamo.Base
}

func NewSpring() *Spring {
	m := &Spring{}
	m.Init("spring")
	m.Setup()
	return m
}

func (m *Spring) Setup() {
	m.Param.Set("time", 5)
	m.Param.Set("dt", 0.01)
	m.Param.Set("period", 1)
	m.Param.Set("initX", 1)
	m.Param.Set("initV", 0)

	m.Plots = []dynamo.Plot{
		{
			Title:    "Spring",
			Vars:     []string{"x", "v"},
			Markdown: "Position and velocity of a frictionless spring trade off in a perfect cycle.",
		},
	}
	m.EditableParams = []dynamo.EditableParam{
		{Key: "initX", Min: -5, Max: 5},
		{Key: "initV", Min: -5, Max: 5},
	}
	if err := m.ExtractEditableParams(); err != nil {
		panic(err)
	}
}

func (m *Spring) InitVars() {
	m.Var.Set("x", m.Param.At("initX"))
	m.Var.Set("v", m.Param.At("initV"))
}

func (m *Spring) CalcDVars(t float64) {
	period := m.Param.At("period")
	m.DVar.Set("x", m.Var.At("v"))
	m.DVar.Set("v", -4*math.Pi*math.Pi/period/period*m.Var.At("x"))
}
