package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/casim/internal/analysis"
	"github.com/san-kum/casim/internal/automation"
	"github.com/san-kum/casim/internal/config"
	"github.com/san-kum/casim/internal/experiment"
	"github.com/san-kum/casim/internal/export"
	"github.com/san-kum/casim/internal/optim"
	"github.com/san-kum/casim/internal/runner"
	"github.com/san-kum/casim/internal/viz"
	"github.com/san-kum/casim/pkg/automaton"
	"github.com/spf13/cobra"
)

var (
	configFile   string
	width        int
	height       int
	rule         string
	neighborhood string
	generations  int
	seed         int64
	density      float64
	stable       bool
	verbose      bool
	// Output
	show      bool
	plot      bool
	themeName string
	svgPath   string
	jsonPath  string
	// Live view
	frameRate int
	// init
	preset string
	// Batch runs
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	gridValues []string
	metricName string
	maximize   bool
)

// main registers the casim commands and flags and executes the root command.
// It exits with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "casim",
		Short:         "cellular automaton workbench",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run an automaton and print a summary",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAutomaton,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&show, "show", false, "print the final generation")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot population per generation")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final generation as SVG")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "write a JSON run report (- for stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "step an automaton in a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 10, "generations per second")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [preset]",
		Short: "population spectrum and oscillation period",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	addRunFlags(analyzeCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "list rules and neighborhoods",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := experiment.NewRegistry()
			fmt.Printf("rules: %s\n", strings.Join(reg.ListRules(), ", "))
			fmt.Println("       or any life-like rule string such as B36/S23")
			fmt.Printf("neighborhoods: %s\n", strings.Join(reg.ListNeighborhoods(), ", "))
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "run once per value of a parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "density", "parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.9, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 9, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset]",
		Short: "run random soups and count fixed points",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addRunFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of soups")

	searchCmd := &cobra.Command{
		Use:   "search [preset]",
		Short: "grid search parameters for the best final metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSearch,
	}
	addRunFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&gridValues, "grid", nil, "name=v1,v2,... (repeatable)")
	searchCmd.Flags().StringVar(&metricName, "metric", "population", "metric to optimize")
	searchCmd.Flags().BoolVar(&maximize, "maximize", false, "keep the largest value instead of the smallest")

	rootCmd.AddCommand(runCmd, liveCmd, analyzeCmd, presetsCmd, rulesCmd, initCmd,
		scenarioCmd, sweepCmd, monteCarloCmd, searchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "grid width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "grid height")
	cmd.Flags().StringVar(&rule, "rule", config.DefaultRule, "rule name or B/S string")
	cmd.Flags().StringVar(&neighborhood, "neighborhood", config.DefaultNeighborhood, "neighborhood name")
	cmd.Flags().IntVar(&generations, "generations", config.DefaultGenerations, "generations to run")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&density, "density", config.DefaultDensity, "initial live fraction for random soups")
	cmd.Flags().BoolVar(&stable, "stable", false, "stop at the first fixed point")
	cmd.Flags().StringVar(&themeName, "theme", "cyberpunk", "color theme ("+strings.Join(viz.ThemeNames(), "|")+")")
}

// resolveConfig layers preset, config file and explicitly set flags in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Seed = seed

	if len(args) > 0 {
		p := config.GetPreset(args[0])
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("rule") {
		cfg.Rule = rule
	}
	if flags.Changed("neighborhood") {
		cfg.Neighborhood = neighborhood
		cfg.Offsets = nil
	}
	if flags.Changed("generations") {
		cfg.Generations = generations
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("density") {
		cfg.Init.Density = density
		cfg.Init.Pattern = nil
	}
	if flags.Changed("stable") {
		cfg.StopWhenStable = stable
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func execute(cfg *config.Config) (*experiment.Experiment, *runner.Result, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return nil, nil, err
	}
	slog.Debug("run finished", "steps", result.Steps, "elapsed", time.Since(start))
	return exp, result, err
}

func runAutomaton(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp, result, runErr := execute(cfg)
	if exp == nil {
		return runErr
	}
	sim := exp.Runner().Simulation()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "grid\t%dx%d\n", cfg.Width, cfg.Height)
	fmt.Fprintf(w, "rule\t%s\n", cfg.Rule)
	fmt.Fprintf(w, "generations\t%d\n", result.Generation)
	if result.Stable {
		fmt.Fprintf(w, "fixed point\tgeneration %d\n", result.StableAt)
	}
	for _, name := range []string{"population", "density", "activity"} {
		if v, ok := result.Metrics[name]; ok {
			fmt.Fprintf(w, "%s\t%.4g\n", name, v)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if show {
		fmt.Println()
		fmt.Println(viz.Framed(sim.Cells(), sim.Width(), viz.GetTheme(themeName)))
	}
	if plot {
		fmt.Println()
		fmt.Println(viz.PopulationPlot(result.Series["population"], "population", 80, 10))
	}
	if svgPath != "" {
		theme := viz.GetTheme(themeName)
		fill := string(theme.Alive)
		if fill == "" {
			fill = "#00ff00"
		}
		if err := export.WriteFile(svgPath, export.GridToSVG(sim.Cells(), sim.Width(), 8, fill)); err != nil {
			return fmt.Errorf("failed to write svg: %w", err)
		}
		slog.Info("wrote svg", "path", svgPath)
	}
	if jsonPath != "" {
		report := export.NewReport(cfg.Rule, cfg.Neighborhood, cfg.Width, cfg.Height, cfg.Seed, result)
		if err := export.ExportJSON(jsonPath, report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	factory := func() (*automaton.Simulation[bool], error) {
		return experiment.Build(cfg, reg)
	}

	m, err := viz.NewModel(factory, viz.GetTheme(themeName), frameRate, cfg.Generations)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	_, result, err := execute(cfg)
	if err != nil {
		return err
	}

	series := result.Series["population"]
	summary := analysis.Summarize(series)
	fmt.Printf("population over %d generations: min %.0f, max %.0f, mean %.2f\n\n",
		len(series)-1, summary.Min, summary.Max, summary.Mean)

	ps := analysis.PowerSpectrum(series)
	if len(ps) > 1 {
		graph := viz.PopulationPlot(ps[1:], "power spectrum (population)", 80, 15)
		fmt.Println(graph)
		fmt.Println()
	}

	period, ok := analysis.DominantPeriod(series)
	if !ok {
		fmt.Println("no oscillation detected")
		return nil
	}
	fmt.Printf("dominant period: %.2f generations\n", period)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGRID\tRULE\tNEIGHBORHOOD\tGENERATIONS")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%s\t%d\n", name, p.Width, p.Height, p.Rule, p.Neighborhood, p.Generations)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, scenario, experiment.NewRegistry())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tGENERATIONS\tPOPULATION\tFIXED POINT")
	for i, r := range results {
		fixed := "-"
		if r.Stable {
			fixed = strconv.Itoa(r.StableAt)
		}
		fmt.Fprintf(w, "%d\t%d\t%.0f\t%s\n", i+1, r.Generation, r.Metrics["population"], fixed)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		ParamMin: sweepMin,
		ParamMax: sweepMax,
		NumSteps: sweepSteps,
	}
	results, err := automation.RunSweep(ctx, sweep, experiment.NewRegistry())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL\tPEAK\tGENERATIONS\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.0f\t%.0f\t%d\n", r.ParamValue, r.FinalPopulation, r.PeakPopulation, r.Generation)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	cfg.StopWhenStable = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mc := &automation.MonteCarloConfig{Base: cfg, NumTrials: trials, Seed: uint64(cfg.Seed)}
	results, err := automation.RunMonteCarlo(ctx, mc, experiment.NewRegistry())
	if err != nil && len(results) == 0 {
		return err
	}

	stableCount, unstableCount := automation.MonteCarloStats(results)
	final := make([]float64, len(results))
	for i, r := range results {
		final[i] = r.FinalPopulation
	}
	summary := analysis.Summarize(final)

	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("reached a fixed point within %d generations: %d\n", cfg.Generations, stableCount)
	fmt.Printf("still changing: %d\n", unstableCount)
	fmt.Printf("final population: min %.0f, max %.0f, mean %.2f\n", summary.Min, summary.Max, summary.Mean)
	return err
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	names, ranges, err := parseGrid(gridValues)
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		c := cfg.Clone()
		for name, v := range params {
			if err := experiment.ApplyParam(c, name, v); err != nil {
				return nil, err
			}
		}
		exp := experiment.New(c)
		if err := exp.Setup(reg); err != nil {
			slog.Debug("skipping combination", "params", params, "err", err)
			return nil, err
		}
		return exp, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := optim.NewGridSearch(names, ranges)
	g.Maximize = maximize
	params, best, err := g.Search(ctx, build, metricName)
	if err != nil {
		return err
	}

	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s=%g", n, params[n]))
	}
	fmt.Printf("best %s: %.4g at %s\n", metricName, best, strings.Join(parts, " "))
	return nil
}

// parseGrid turns "name=v1,v2" entries into parallel name and value slices.
func parseGrid(entries []string) ([]string, [][]float64, error) {
	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("at least one --grid is required")
	}
	names := make([]string, 0, len(entries))
	ranges := make([][]float64, 0, len(entries))
	for _, entry := range entries {
		name, list, ok := strings.Cut(entry, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("invalid grid %q: want name=v1,v2", entry)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid grid %q: %w", entry, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}
