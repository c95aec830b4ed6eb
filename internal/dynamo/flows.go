package dynamo

import "fmt"

// Flow declares a conserved transfer between two var entries: the
// magnitude named by Via is subtracted from dvar[From] and added to
// dvar[To] on every derivative evaluation. Read-only after declaration.
type Flow struct {
	From string
	To   string
	Via  string
}

// AddFlowsToDVars applies every declared flow to the dvar container.
// AuxVarFlows resolve their magnitude from aux_var, falling back to var;
// ParamFlows resolve from param. Contributions are additive, so the
// model may add further derivative terms before or after this call.
// dvar must already hold an entry for every var key that participates.
func (b *Base) AddFlowsToDVars() {
	for _, f := range b.AuxVarFlows {
		var val float64
		switch {
		case b.AuxVar.Has(f.Via):
			val = b.AuxVar.At(f.Via)
		case b.Var.Has(f.Via):
			val = b.Var.At(f.Via)
		default:
			panic(fmt.Errorf("%w: flow magnitude %q in neither aux_var nor var", ErrUnknownKey, f.Via))
		}
		b.DVar.Add(f.From, -val)
		b.DVar.Add(f.To, val)
	}

	for _, f := range b.ParamFlows {
		val := b.Param.At(f.Via)
		b.DVar.Add(f.From, -val)
		b.DVar.Add(f.To, val)
	}
}
