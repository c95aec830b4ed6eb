// Package registry maps model and integrator names to factories, so
// the CLI and TUI can construct them from user input.
package registry

import (
	"fmt"
	"sort"

	"github.com/san-kum/modeldrop/internal/dynamo"
	"github.com/san-kum/modeldrop/internal/integrators"
	"github.com/san-kum/modeldrop/internal/models"
)

type Registry struct {
	models      map[string]func() dynamo.Model
	integrators map[string]func() integrators.Integrator
}

func New() *Registry {
	r := &Registry{
		models:      make(map[string]func() dynamo.Model),
		integrators: make(map[string]func() integrators.Integrator),
	}

	r.models["growth"] = func() dynamo.Model { return models.NewGrowth() }
	r.models["ecology"] = func() dynamo.Model { return models.NewEcology() }
	r.models["epidemic"] = func() dynamo.Model { return models.NewEpidemic() }
	r.models["spring"] = func() dynamo.Model { return models.NewSpring() }
	r.models["goodwin"] = func() dynamo.Model { return models.NewGoodwin() }
	r.models["turchin"] = func() dynamo.Model { return models.NewTurchin() }
	r.models["property"] = func() dynamo.Model { return models.NewProperty() }

	r.integrators["rk45"] = func() integrators.Integrator { return integrators.NewRK45() }
	r.integrators["euler"] = func() integrators.Integrator { return integrators.NewEuler() }

	return r
}

func (r *Registry) GetModel(name string) (dynamo.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s (available: %v)", name, r.ListModels())
	}
	return fn(), nil
}

func (r *Registry) GetIntegrator(name string) (integrators.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, r.ListIntegrators())
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
