// Package viz renders a model's plot descriptors as terminal charts.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/modeldrop/internal/dynamo"
)

// RenderPlot draws one plot descriptor against the model's most recent
// solution. Fn plots sample the named fn across XLims instead.
func RenderPlot(m dynamo.Model, p dynamo.Plot, width, height int) (string, error) {
	if p.Fn != "" {
		return renderFnPlot(m, p, width, height)
	}

	b := m.Core()
	if len(b.Times) == 0 {
		return "", fmt.Errorf("viz: model %s has no solution to plot", b.Name)
	}

	data := make([][]float64, 0, len(p.Vars))
	for _, key := range p.Vars {
		series := b.Solution.Series(key)
		if series == nil {
			return "", fmt.Errorf("viz: no series %q in solution", key)
		}
		data = append(data, series)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("viz: plot %q declares no vars", p.Title)
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(p.Title),
	)

	var sb strings.Builder
	sb.WriteString(graph)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("series: %s\n", strings.Join(p.Vars, ", ")))
	return sb.String(), nil
}

func renderFnPlot(m dynamo.Model, p dynamo.Plot, width, height int) (string, error) {
	b := m.Core()
	if !b.Fns.Has(p.Fn) {
		return "", fmt.Errorf("viz: no fn %q in model %s", p.Fn, b.Name)
	}

	lo, hi := p.XLims[0], p.XLims[1]
	if hi <= lo {
		lo, hi = 0, 1
	}

	fn := b.Fns.At(p.Fn)
	n := width
	if n < 2 {
		n = 2
	}
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		x := lo + (hi-lo)*float64(i)/float64(n-1)
		data[i] = fn(x)
	}

	title := p.Title
	if title == "" {
		title = p.Fn
	}
	caption := fmt.Sprintf("%s [%g, %g]", title, lo, hi)

	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
	return graph + "\n", nil
}

// RenderAll draws every plot the model declares, separated by blank
// lines.
func RenderAll(m dynamo.Model, width, height int) (string, error) {
	var sb strings.Builder
	for _, p := range m.Core().Plots {
		graph, err := RenderPlot(m, p, width, height)
		if err != nil {
			return "", err
		}
		sb.WriteString(graph)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
