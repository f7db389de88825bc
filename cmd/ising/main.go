package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/isingsim/internal/config"
	"github.com/san-kum/isingsim/internal/thermo"
	"github.com/san-kum/isingsim/internal/viz"
)

var (
	dataDir  string
	logLevel string
	log      *logrus.Logger

	// Experiment parameters
	configFile      string
	preset          string
	rows            int
	columns         int
	temperatures    []float64
	tStart          float64
	tStop           float64
	tStep           float64
	coupling        float64
	field           float64
	thermSweeps     int
	measSweeps      int
	measureEvery    int
	structureFactor bool
	resyncEvery     int
	workers         int
	seed            uint64
	rngKind         string
	initialState    string

	// Output
	outputFile   string
	noSave       bool
	plotQuantity string
	svgQuantity  string
	svgWidth     int
	svgHeight    int

	// Snapshot and bench
	size           int
	temperature    float64
	snapshotSweeps int
	snapshotFile   string
	cellSize       float64
	benchSweeps    int

	// Live view
	liveSize        int
	liveTemperature float64
	sweepsPerFrame  int
	theme           string
)

// main registers commands and flags and executes the root command. It exits
// with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "ising",
		Short:         "2D Ising model Metropolis Monte Carlo",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			log, err = setupLogger(logLevel)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".isingsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a temperature sweep",
		Args:  cobra.NoArgs,
		RunE:  runExperiment,
	}
	addExperimentFlags(runCmd)
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "also write the results table to this file")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	scanCmd := &cobra.Command{
		Use:   "scan [scenario.yaml]",
		Short: "run a finite-size scan scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	scanCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print the observables of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot observables against temperature",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVarP(&plotQuantity, "quantity", "q", "", fmt.Sprintf("single quantity to plot %v", thermo.Quantities()))

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and observables as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one observable curve as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgQuantity, "quantity", "q", string(thermo.QuantitySpecificHeat), "quantity to plot")
	exportSVGCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default <run_id>_<quantity>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 640, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "equilibrate one lattice and write it as SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&size, "size", 64, "lattice side length")
	snapshotCmd.Flags().Float64VarP(&temperature, "temperature", "T", 2.269, "temperature")
	snapshotCmd.Flags().Float64Var(&coupling, "coupling", config.DefaultCoupling, "coupling constant J")
	snapshotCmd.Flags().Float64Var(&field, "field", 0, "external field h")
	snapshotCmd.Flags().IntVar(&snapshotSweeps, "sweeps", 500, "sweeps before the snapshot")
	snapshotCmd.Flags().Uint64Var(&seed, "seed", 0, "seed (0 = OS entropy)")
	snapshotCmd.Flags().StringVar(&rngKind, "rng", "", "generator kind")
	snapshotCmd.Flags().Float64Var(&cellSize, "cell", 6, "pixels per spin")
	snapshotCmd.Flags().StringVarP(&snapshotFile, "output", "o", "snapshot.svg", "output file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a lattice evolve in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&liveSize, "size", 32, "lattice side length")
	liveCmd.Flags().Float64VarP(&liveTemperature, "temperature", "T", 2.0, "initial temperature")
	liveCmd.Flags().Float64Var(&coupling, "coupling", config.DefaultCoupling, "coupling constant J")
	liveCmd.Flags().Float64Var(&field, "field", 0, "external field h")
	liveCmd.Flags().IntVar(&sweepsPerFrame, "sweeps", 1, "sweeps per frame")
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, fmt.Sprintf("colour theme %v", viz.ThemeNames()))
	liveCmd.Flags().Uint64Var(&seed, "seed", 0, "seed (0 = OS entropy)")
	liveCmd.Flags().StringVar(&rngKind, "rng", "", "generator kind")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark sweeps per second for every generator",
		Args:  cobra.NoArgs,
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&size, "size", 64, "lattice side length")
	benchCmd.Flags().IntVar(&benchSweeps, "sweeps", 200, "sweeps per generator")
	benchCmd.Flags().Float64VarP(&temperature, "temperature", "T", 2.269, "temperature")

	rootCmd.AddCommand(runCmd, scanCmd, listCmd, showCmd, plotCmd, exportCmd, exportSVGCmd, snapshotCmd, liveCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addExperimentFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.IntVar(&rows, "rows", def.Rows, "lattice rows")
	f.IntVar(&columns, "columns", def.Columns, "lattice columns")
	f.Float64SliceVar(&temperatures, "temps", nil, "explicit temperature list")
	f.Float64Var(&tStart, "t-start", def.TemperatureRange.Start, "temperature range start")
	f.Float64Var(&tStop, "t-stop", def.TemperatureRange.Stop, "temperature range stop (exclusive)")
	f.Float64Var(&tStep, "t-step", def.TemperatureRange.Step, "temperature range step")
	f.Float64Var(&coupling, "coupling", def.Coupling, "coupling constant J")
	f.Float64Var(&field, "field", def.Field, "external field h")
	f.IntVar(&thermSweeps, "thermalization", def.ThermalizationSweeps, "thermalization sweeps")
	f.IntVar(&measSweeps, "measurement", def.MeasurementSweeps, "measurement sweeps")
	f.IntVar(&measureEvery, "measure-every", def.MeasureEvery, "fold observables every n sweeps")
	f.BoolVar(&structureFactor, "structure-factor", false, "measure the structure factor and correlation length")
	f.IntVar(&resyncEvery, "resync-every", 0, "recompute running totals every n sweeps (0 = never)")
	f.IntVar(&workers, "workers", 0, "parallel temperatures (0 = all CPUs)")
	f.Uint64Var(&seed, "seed", 0, "base seed, context i uses seed+i (0 = OS entropy)")
	f.StringVar(&rngKind, "rng", def.RNG, "generator kind")
	f.StringVar(&initialState, "initial-state", def.InitialState, "initial state (up, down, thermal)")
}

func setupLogger(level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// resolveConfig layers preset, config file and changed flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Rows = rows
	}
	if flags.Changed("columns") {
		cfg.Columns = columns
	}
	if flags.Changed("t-start") || flags.Changed("t-stop") || flags.Changed("t-step") {
		r := config.RangeConfig{Start: tStart, Stop: tStop, Step: tStep}
		if cfg.TemperatureRange != nil {
			r = *cfg.TemperatureRange
		}
		if flags.Changed("t-start") {
			r.Start = tStart
		}
		if flags.Changed("t-stop") {
			r.Stop = tStop
		}
		if flags.Changed("t-step") {
			r.Step = tStep
		}
		cfg.TemperatureRange = &r
		cfg.Temperatures = nil
	}
	if flags.Changed("temps") {
		cfg.Temperatures = temperatures
	}
	if flags.Changed("coupling") {
		cfg.Coupling = coupling
	}
	if flags.Changed("field") {
		cfg.Field = field
	}
	if flags.Changed("thermalization") {
		cfg.ThermalizationSweeps = thermSweeps
	}
	if flags.Changed("measurement") {
		cfg.MeasurementSweeps = measSweeps
	}
	if flags.Changed("measure-every") {
		cfg.MeasureEvery = measureEvery
	}
	if flags.Changed("structure-factor") {
		cfg.StructureFactor = structureFactor
	}
	if flags.Changed("resync-every") {
		cfg.ResyncEvery = resyncEvery
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("rng") {
		cfg.RNG = rngKind
	}
	if flags.Changed("initial-state") {
		cfg.InitialState = initialState
	}
	return cfg, nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("presets:")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		temps, _ := p.ResolveTemperatures()
		fmt.Printf("  %-10s %dx%d, J=%g, %d temperatures, %d+%d sweeps\n",
			name, p.Rows, p.Columns, p.Coupling, len(temps), p.ThermalizationSweeps, p.MeasurementSweeps)
	}
	return nil
}
