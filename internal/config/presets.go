package config

var Presets = map[string]map[string]*Config{
	"epidemic": {
		"mild": {
			Model: "epidemic", Integrator: "rk45", Time: Float(300),
			Params: map[string]float64{"reproductionNumber": 1.2},
		},
		"severe": {
			Model: "epidemic", Integrator: "rk45", Time: Float(150),
			Params: map[string]float64{"reproductionNumber": 3, "infectiousPeriod": 5},
		},
		"slow-burn": {
			Model: "epidemic", Integrator: "rk45", Time: Float(1000),
			Params: map[string]float64{"reproductionNumber": 1.05, "initialPrevalence": 100},
		},
	},
	"ecology": {
		"balanced": {
			Model: "ecology", Integrator: "rk45", Time: Float(200),
			Params: map[string]float64{"initialPrey": 2, "initialPredator": 2},
		},
		"boom-bust": {
			Model: "ecology", Integrator: "rk45", Time: Float(400),
			Params: map[string]float64{"initialPrey": 20, "initialPredator": 1},
		},
	},
	"growth": {
		"runaway": {
			Model: "growth", Integrator: "rk45", Time: Float(200),
			Params: map[string]float64{"growthRate": 0.07},
		},
		"saturating": {
			Model: "growth", Integrator: "rk45", Time: Float(400),
			Params: map[string]float64{"carryingCapacity": 500},
		},
	},
	"spring": {
		"slow": {
			Model: "spring", Integrator: "rk45", Time: Float(10),
			Params: map[string]float64{"period": 2},
		},
	},
	"goodwin": {
		"long-wave": {
			Model: "goodwin", Integrator: "rk45", Time: Float(500),
		},
	},
	"turchin": {
		"collapse": {
			Model: "turchin", Integrator: "rk45", Time: Float(1000),
			Params: map[string]float64{"expenditurePerCapita": 0.4},
		},
	},
}

func GetPreset(model, name string) *Config {
	group, ok := Presets[model]
	if !ok {
		return nil
	}
	return group[name]
}

func ListPresets(model string) []string {
	group, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
