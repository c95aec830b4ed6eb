package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/modeldrop/internal/config"
	"github.com/san-kum/modeldrop/internal/dynamo"
	"github.com/san-kum/modeldrop/internal/registry"
	"github.com/san-kum/modeldrop/internal/store"
	"github.com/san-kum/modeldrop/internal/tui"
	"github.com/san-kum/modeldrop/internal/viz"
)

var (
	dataDir    string
	duration   float64
	dt         float64
	integrator string
	setParams  []string
	configFile string
	preset     string
	showPlots  bool
	saveRun    bool
	jsonPath   string
	csvPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "modeldrop",
		Short: "dynamical models over named variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to interactive mode when no command given
			return tui.Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".modeldrop", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a model",
		Args:  cobra.ExactArgs(1),
		RunE:  runModel,
	}
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration (model default if unset)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "output timestep (model default if unset)")
	runCmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator")
	runCmd.Flags().StringArrayVar(&setParams, "set", nil, "param override key=value (repeatable)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&showPlots, "plot", false, "render the model's plots")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "save the run to the data directory")
	runCmd.Flags().StringVar(&jsonPath, "export-json", "", "write the solution as JSON (- for stdout)")
	runCmd.Flags().StringVar(&csvPath, "export-csv", "", "write the solution as CSV (- for stdout)")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New()
			for _, name := range reg.ListModels() {
				m, err := reg.GetModel(name)
				if err != nil {
					return err
				}
				fmt.Printf("%-12s vars after init: %d, params: %d\n",
					name, countVars(m), m.Core().Param.Len())
			}
			return nil
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.AddCommand(runCmd, modelsCmd, runsCmd, plotCmd, presetsCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runModel(cmd *cobra.Command, args []string) error {
	name := args[0]
	reg := registry.New()

	m, err := reg.GetModel(name)
	if err != nil {
		return err
	}

	if preset != "" {
		cfg := config.GetPreset(name, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		if err := cfg.Apply(m); err != nil {
			return err
		}
		if cfg.Integrator != "" && !cmd.Flags().Changed("integrator") {
			integrator = cfg.Integrator
		}
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Apply(m); err != nil {
			return err
		}
		if cfg.Integrator != "" && !cmd.Flags().Changed("integrator") {
			integrator = cfg.Integrator
		}
	}

	// CLI flags win over preset and config file.
	if cmd.Flags().Changed("time") {
		m.Core().Param.Set("time", duration)
	}
	if cmd.Flags().Changed("dt") {
		m.Core().Param.Set("dt", dt)
	}
	for _, pair := range setParams {
		key, val, err := parseOverride(pair)
		if err != nil {
			return err
		}
		if !m.Core().Param.Has(key) {
			return fmt.Errorf("model %s has no param %q", name, key)
		}
		m.Core().Param.Set(key, val)
	}

	integ, err := reg.GetIntegrator(integrator)
	if err != nil {
		return err
	}
	m.Core().Integrator = integ

	fmt.Printf("running %s...\n", name)
	start := time.Now()
	if err := dynamo.Run(context.Background(), m); err != nil {
		return err
	}
	elapsed := time.Since(start)

	b := m.Core()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("time points: %d, series: %d\n", len(b.Times), b.Solution.Len())

	if saveRun {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(m, integrator)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if jsonPath != "" {
		if err := exportTo(jsonPath, func(f *os.File) error { return store.ExportJSON(f, m) }); err != nil {
			return err
		}
	}
	if csvPath != "" {
		if err := exportTo(csvPath, func(f *os.File) error { return store.ExportCSV(f, m) }); err != nil {
			return err
		}
	}

	if showPlots {
		out, err := viz.RenderAll(m, 80, 12)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(out)
	}

	return nil
}

func parseOverride(pair string) (string, float64, error) {
	key, raw, ok := strings.Cut(pair, "=")
	if !ok {
		return "", 0, fmt.Errorf("bad --set %q, want key=value", pair)
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad --set %q: %w", pair, err)
	}
	return key, val, nil
}

func exportTo(path string, write func(*os.File) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

func countVars(m dynamo.Model) int {
	m.InitVars()
	return m.Core().Var.Len()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDT\tINTEGRATOR\tSAVED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%s\t%s\n",
			r.ID, r.Model, r.Time, r.Dt, r.Integrator, r.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	_, sol, err := st.LoadSolution(runID)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n\n", runID, meta.Model)
	for _, key := range sol.Keys() {
		graph := asciigraph.Plot(sol.Series(key),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(key),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}
