package models

import (
	"math"

	"github.com/san-kum/modeldrop/internal/dynamo"
)

// minPayment is the annuity formula: the constant yearly payment that
// amortizes principal over nPayment years at the given rate.
func minPayment(principal, rate, nPayment float64) float64 {
	return (rate * principal) / (1 - math.Pow(1+rate, -nPayment))
}

// Property compares buying a property on a mortgage against renting and
// investing the difference in a fund. Both tracks start from the same
// deposit and the same yearly outlay, so the profit series are directly
// comparable.
type Property struct {
	dynamo.Base
}

func NewProperty() *Property {
	m := &Property{}
	m.Init("property")
	m.Setup()
	return m
}

func (m *Property) Setup() {
	m.Param.Set("time", 50)
	m.Param.Set("initialProperty", 600000)
	m.Param.Set("deposit", 150000)
	m.Param.Set("interestRate", 0.05)
	m.Param.Set("propertyRate", 0.045)
	m.Param.Set("mortgageLength", 30)
	m.Param.Set("fundRate", 0.08)
	m.Param.Set("rentMonth", 2000)
	m.Param.Set("inflation", 0.02)

	m.Plots = []dynamo.Plot{
		{
			Title: "Month",
			Vars:  []string{"paymentMonth", "interestMonth", "rentMonth", "fundChangeMonth"},
			Markdown: "Monthly cashflows of the two tracks: the fixed " +
				"mortgage payment against rent, with the difference " +
				"flowing into the fund.",
		},
		{
			Title: "Property",
			Vars:  []string{"paid", "property", "totalInterest", "propertyProfit", "principal"},
		},
		{
			Title: "Fund",
			Vars:  []string{"paid", "fund", "totalRent", "fundProfit"},
		},
	}
	m.EditableParams = []dynamo.EditableParam{
		{Key: "time", Max: 100},
		{Key: "mortgageLength", Max: 100},
		{Key: "interestRate", Max: 0.5},
		{Key: "initialProperty", Max: 1000000},
		{Key: "deposit", Max: 1000000},
		{Key: "propertyRate", Max: 0.5},
		{Key: "fundRate", Max: 0.5},
	}
}

func (m *Property) InitVars() {
	m.Var.Set("property", m.Param.At("initialProperty"))
	m.Var.Set("principal", m.Param.At("initialProperty")-m.Param.At("deposit"))
	m.Var.Set("totalInterest", 0)
	m.Var.Set("fund", m.Param.At("deposit"))
	m.Var.Set("rent", m.Param.At("rentMonth")*12)
	m.Var.Set("totalRent", 0)
	m.Var.Set("paid", m.Param.At("deposit"))
}

func (m *Property) CalcAuxVars(t float64) {
	// The payment is fixed at signing, so it derives from the initial
	// principal, not the current one.
	m.AuxVar.Set("paymentRate", minPayment(
		m.Param.At("initialProperty")-m.Param.At("deposit"),
		m.Param.At("interestRate"),
		m.Param.At("mortgageLength")))

	m.AuxVar.Set("interestPaid", m.Param.At("interestRate")*m.Var.At("principal"))
	m.AuxVar.Set("fundChange", m.AuxVar.At("paymentRate")-m.Var.At("rent"))

	m.AuxVar.Set("interestMonth", m.AuxVar.At("interestPaid")/12)
	m.AuxVar.Set("paymentMonth", m.AuxVar.At("paymentRate")/12)
	m.AuxVar.Set("rentMonth", m.Var.At("rent")/12)
	m.AuxVar.Set("fundChangeMonth", m.AuxVar.At("fundChange")/12)

	m.AuxVar.Set("propertyProfit",
		m.Var.At("property")-m.Param.At("deposit")-m.Var.At("principal")-m.Var.At("totalInterest"))
	m.AuxVar.Set("fundProfit",
		m.Var.At("fund")-m.Param.At("deposit")-m.Var.At("totalRent"))
}

func (m *Property) CalcDVars(t float64) {
	m.DVar.Set("totalInterest", m.AuxVar.At("interestPaid"))
	m.DVar.Set("property", m.Param.At("propertyRate")*m.Var.At("property"))
	if m.Var.At("principal") >= 0 {
		m.DVar.Set("principal", -(m.AuxVar.At("paymentRate") - m.AuxVar.At("interestPaid")))
	} else {
		m.DVar.Set("principal", 0)
	}
	m.DVar.Set("fund", m.Param.At("fundRate")*m.Var.At("fund")+m.AuxVar.At("fundChange"))
	m.DVar.Set("paid", m.AuxVar.At("paymentRate"))
	m.DVar.Set("rent", m.Param.At("inflation")*m.Var.At("rent"))
	m.DVar.Set("totalRent", m.Var.At("rent"))
}
