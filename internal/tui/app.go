// Package tui is the interactive terminal front end: pick a model,
// nudge its editable params, and watch the solution re-plot. It plays
// the role the original web UI's sliders played, one keypress at a
// time.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/modeldrop/internal/dynamo"
	"github.com/san-kum/modeldrop/internal/registry"
	"github.com/san-kum/modeldrop/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type screen int

const (
	screenMenu screen = iota
	screenModel
)

type app struct {
	reg    *registry.Registry
	screen screen

	names  []string
	cursor int

	model       dynamo.Model
	params      []dynamo.EditableParam
	paramCursor int
	plotIndex   int
	runErr      error

	width  int
	height int
}

func newApp() app {
	reg := registry.New()
	return app{
		reg:    reg,
		names:  reg.ListModels(),
		width:  80,
		height: 24,
	}
}

// Run starts the interactive application and blocks until quit.
func Run() error {
	p := tea.NewProgram(newApp(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil
	}
	return a, nil
}

func (a app) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case screenMenu:
		return a.menuKey(msg)
	case screenModel:
		return a.modelKey(msg)
	}
	return a, nil
}

func (a app) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.names)-1 {
			a.cursor++
		}
	case "enter", " ":
		m, err := a.reg.GetModel(a.names[a.cursor])
		if err != nil {
			a.runErr = err
			return a, nil
		}
		a.model = m
		a.params = m.Core().EditableParams
		a.paramCursor = 0
		a.plotIndex = 0
		a.rerun()
		a.screen = screenModel
		return a, tea.ClearScreen
	}
	return a, nil
}

func (a app) modelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "q", "esc":
		a.screen = screenMenu
		a.model = nil
		a.runErr = nil
		return a, tea.ClearScreen
	case "up", "k":
		if a.paramCursor > 0 {
			a.paramCursor--
		}
	case "down", "j":
		if a.paramCursor < len(a.params)-1 {
			a.paramCursor++
		}
	case "left", "h":
		a.nudgeParam(-1)
	case "right", "l":
		a.nudgeParam(1)
	case "r", "enter":
		a.rerun()
	case "tab", "]":
		if n := len(a.model.Core().Plots); n > 0 {
			a.plotIndex = (a.plotIndex + 1) % n
		}
	case "[":
		if n := len(a.model.Core().Plots); n > 0 {
			a.plotIndex = (a.plotIndex + n - 1) % n
		}
	}
	return a, nil
}

// nudgeParam moves the selected param one slider notch and re-runs, so
// the plots track the slider the way the original UI did.
func (a *app) nudgeParam(direction float64) {
	if len(a.params) == 0 {
		return
	}
	p := a.params[a.paramCursor]
	b := a.model.Core()

	step := (p.Max - p.Min) / 40
	if step <= 0 {
		step = 0.1
	}
	val := b.Param.At(p.Key) + direction*step
	if val < p.Min {
		val = p.Min
	}
	if val > p.Max {
		val = p.Max
	}
	b.Param.Set(p.Key, val)
	a.rerun()
}

func (a *app) rerun() {
	a.runErr = dynamo.Run(context.Background(), a.model)
}

func (a app) View() string {
	switch a.screen {
	case screenMenu:
		return a.menuView()
	case screenModel:
		return a.modelView()
	}
	return ""
}

func (a app) menuView() string {
	var sb strings.Builder
	sb.WriteString(cyan.Render("modeldrop") + dim.Render("  dynamical models playground") + "\n\n")

	for i, name := range a.names {
		cursor := "  "
		style := white
		if i == a.cursor {
			cursor = green.Render("> ")
			style = yellow
		}
		sb.WriteString(cursor + style.Render(name) + "\n")
	}

	sb.WriteString("\n" + dim.Render("j/k move · enter select · q quit") + "\n")
	return sb.String()
}

func (a app) modelView() string {
	b := a.model.Core()

	var sb strings.Builder
	sb.WriteString(cyan.Render(b.Name) + "\n\n")

	for i, p := range a.params {
		cursor := "  "
		style := white
		if i == a.paramCursor {
			cursor = green.Render("> ")
			style = yellow
		}
		val := b.Param.At(p.Key)
		bar := sliderBar(val, p.Min, p.Max, 20)
		sb.WriteString(fmt.Sprintf("%s%s %s %s\n",
			cursor, style.Render(fmt.Sprintf("%-22s", p.Key)),
			dim.Render(bar), style.Render(fmt.Sprintf("%.4g", val))))
	}

	sb.WriteString("\n")
	if a.runErr != nil {
		sb.WriteString(red.Render("run failed: "+a.runErr.Error()) + "\n")
	} else if len(b.Plots) > 0 {
		plotWidth := a.width - 14
		if plotWidth > 70 {
			plotWidth = 70
		}
		if plotWidth < 20 {
			plotWidth = 20
		}
		graph, err := viz.RenderPlot(a.model, b.Plots[a.plotIndex], plotWidth, 10)
		if err != nil {
			sb.WriteString(red.Render(err.Error()) + "\n")
		} else {
			sb.WriteString(graph)
		}
		sb.WriteString(dim.Render(fmt.Sprintf("plot %d/%d", a.plotIndex+1, len(b.Plots))) + "\n")
	}

	sb.WriteString("\n" + dim.Render("j/k param · h/l adjust · r rerun · tab next plot · q back") + "\n")
	return sb.String()
}

func sliderBar(val, min, max float64, width int) string {
	if max <= min {
		return strings.Repeat("─", width)
	}
	frac := (val - min) / (max - min)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	pos := int(frac * float64(width-1))

	var sb strings.Builder
	for i := 0; i < width; i++ {
		if i == pos {
			sb.WriteString("█")
		} else {
			sb.WriteString("─")
		}
	}
	return sb.String()
}
