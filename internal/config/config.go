// Package config loads and saves run configuration: which model and
// integrator to use, the time grid, and param overrides applied on top
// of the model's declared defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/modeldrop/internal/dynamo"
)

// Config describes one run. Time and Dt are pointers so an absent yaml
// key means "keep the model's default" while an explicit `time: 0`
// still applies, yielding the single-point grid.
type Config struct {
	Model      string             `yaml:"model"`
	Integrator string             `yaml:"integrator"`
	Time       *float64           `yaml:"time"`
	Dt         *float64           `yaml:"dt"`
	Params     map[string]float64 `yaml:"params"`
}

// Float builds a pointer for Config literals.
func Float(v float64) *float64 { return &v }

func DefaultConfig() *Config {
	return &Config{
		Model:      "ecology",
		Integrator: "rk45",
		Params:     make(map[string]float64),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Apply writes the configured time grid and param overrides into the
// model's param container. Unknown param names are rejected rather
// than silently declared, since a typo would otherwise just be
// ignored by the model's equations.
func (c *Config) Apply(m dynamo.Model) error {
	b := m.Core()

	if c.Time != nil {
		b.Param.Set("time", *c.Time)
	}
	if c.Dt != nil {
		b.Param.Set("dt", *c.Dt)
	}
	for key, val := range c.Params {
		if !b.Param.Has(key) {
			return fmt.Errorf("config: model %s has no param %q", b.Name, key)
		}
		b.Param.Set(key, val)
	}
	return nil
}
