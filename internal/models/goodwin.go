package models

import (
	"github.com/san-kum/modeldrop/internal/dynamo"
)

// Goodwin is the Goodwin business-cycle model: wages, labor,
// productivity and population interact to produce endogenous cycles in
// the wage and profit shares of output. The wage response to employment
// is a shaped curve held in the fn container.
type Goodwin struct {
	dynamo.Base
}

func NewGoodwin() *Goodwin {
	m := &Goodwin{}
	m.Init("goodwin")
	m.Setup()
	return m
}

func (m *Goodwin) Setup() {
	m.Param.Set("time", 100)
	m.Param.Set("dt", 0.1)
	m.Param.Set("accelerator", 3)
	m.Param.Set("depreciation", 0.01)
	m.Param.Set("productivityRate", 0.02)
	m.Param.Set("birthRate", 0.01)

	// Wage bargaining strengthens sharply near full employment, with
	// a cutoff just short of the curve's asymptote at laborFraction=1.
	wageSq := dynamo.MakeSqFn(0.0000641, 1, 1, 0.0400641)
	m.Fns.Set("wageChangeFn", dynamo.MakeCutoffFn(wageSq, 0.9999))

	m.Plots = []dynamo.Plot{
		{
			Title: "Share",
			Vars:  []string{"wageShare", "profitShare"},
			Markdown: "The relative incomes of labor and capital cycle " +
				"endogenously: profitability drives investment, investment " +
				"drives employment, and employment drives wage demands.",
		},
		{
			Title: "Output",
			Vars:  []string{"output", "wages", "capital"},
		},
		{
			Title: "People",
			Vars:  []string{"population", "labor"},
		},
		{
			Title: "Wage Change Function",
			Fn:    "wageChangeFn",
			XLims: [2]float64{0.8, 0.995},
		},
	}
	m.EditableParams = []dynamo.EditableParam{
		{Key: "time", Max: 500},
		{Key: "birthRate", Max: 0.1},
		{Key: "accelerator", Max: 5},
		{Key: "depreciation", Max: 0.1},
		{Key: "productivityRate", Max: 0.1},
	}
}

func (m *Goodwin) InitVars() {
	m.Var.Set("wage", 0.95)
	m.Var.Set("productivity", 1)
	m.Var.Set("population", 50)
	m.Var.Set("labor", 0.9*m.Var.At("population"))
}

func (m *Goodwin) CalcAuxVars(t float64) {
	labor := m.Var.At("labor")
	m.AuxVar.Set("laborFraction", labor/m.Var.At("population"))
	m.AuxVar.Set("output", labor*m.Var.At("productivity"))
	m.AuxVar.Set("capital", m.AuxVar.At("output")*m.Param.At("accelerator"))
	m.AuxVar.Set("wages", labor*m.Var.At("wage"))

	m.AuxVar.Set("wageShare", m.AuxVar.At("wages")/m.AuxVar.At("output"))
	m.AuxVar.Set("profitShare", 1-m.AuxVar.At("wageShare"))
}

func (m *Goodwin) CalcDVars(t float64) {
	m.DVar.Set("labor", m.Var.At("labor")*(
		(1-m.Var.At("wage")/m.Var.At("productivity"))/m.Param.At("accelerator")-
			m.Param.At("depreciation")-
			m.Param.At("productivityRate")))
	m.DVar.Set("wage", m.Fns.At("wageChangeFn")(m.AuxVar.At("laborFraction"))*m.Var.At("wage"))
	m.DVar.Set("productivity", m.Param.At("productivityRate")*m.Var.At("productivity"))
	m.DVar.Set("population", m.Param.At("birthRate")*m.Var.At("population"))
}
