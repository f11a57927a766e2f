package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/trajsim/internal/automation"
	"github.com/san-kum/trajsim/internal/config"
	"github.com/san-kum/trajsim/internal/environment"
	"github.com/san-kum/trajsim/internal/export"
	"github.com/san-kum/trajsim/internal/metrics"
	"github.com/san-kum/trajsim/internal/optim"
	"github.com/san-kum/trajsim/internal/trajectory"
	"github.com/san-kum/trajsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	planet     string
	speed      float64
	angle      float64
	mass       float64
	radius     float64
	drag       bool
	showIdeal  bool
	configFile string
	preset     string
	verbose    bool
	// Plot size
	width  int
	height int
	// Angle search
	fromAngle float64
	toAngle   float64
	steps     int
	// Export target, "-" for stdout
	outFile string
	// Sweep and Monte Carlo
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	speedSpread float64
	angleSpread float64
	trials      int
	mcSeed      int64
)

// main registers the commands, opens the dashboard when no subcommand is
// given, and exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "trajsim",
		Short: "projectile trajectories with and without air resistance",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		RunE: runDashboard,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&planet, "planet", config.DefaultPlanet, "planet (earth, moon, mars, jupiter)")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "initial speed (m/s)")
	pf.Float64Var(&angle, "angle", config.DefaultAngle, "launch angle (degrees)")
	pf.Float64Var(&mass, "mass", config.DefaultMass, "projectile mass (kg)")
	pf.Float64Var(&radius, "radius", config.DefaultRadius, "projectile radius (m)")
	pf.BoolVar(&drag, "drag", true, "model air resistance")
	pf.BoolVar(&showIdeal, "ideal", true, "overlay the ideal trajectory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute a trajectory and plot it",
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&width, "width", 80, "plot width")
	runCmd.Flags().IntVar(&height, "height", 15, "plot height")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare the analytic, rk45 and euler solutions of one launch",
		RunE:  compareMethods,
	}

	planetsCmd := &cobra.Command{
		Use:   "planets",
		Short: "list planetary environments",
		RunE:  listPlanets,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "search launch angles for the longest range with drag",
		RunE:  optimizeAngle,
	}
	optimizeCmd.Flags().Float64Var(&fromAngle, "from", 15, "first angle (degrees)")
	optimizeCmd.Flags().Float64Var(&toAngle, "to", 75, "last angle (degrees)")
	optimizeCmd.Flags().IntVar(&steps, "steps", 61, "number of angles")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "export the trajectory to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportRun(cmd, "csv", export.WriteCSV)
		},
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default derived from the run, - for stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "export the trajectory to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportRun(cmd, "json", export.WriteJSON)
		},
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default derived from the run, - for stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "export the trajectory plot to SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportRun(cmd, "svg", export.WriteSVG)
		},
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default derived from the run, - for stdout)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of launches",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one launch parameter with drag",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "speed", "parameter to sweep (speed, angle, mass, radius)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", config.MinSpeed, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", config.MaxSpeed, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "landing dispersion under perturbed speed and angle",
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().Float64Var(&speedSpread, "speed-spread", 1, "max speed perturbation (m/s)")
	monteCarloCmd.Flags().Float64Var(&angleSpread, "angle-spread", 2, "max angle perturbation (degrees)")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().Int64Var(&mcSeed, "seed", time.Now().UnixNano(), "random seed")

	saveConfigCmd := &cobra.Command{
		Use:   "save-config [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("saved %s\n", args[0])
			return nil
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal dashboard",
		RunE:  runDashboard,
	}

	rootCmd.AddCommand(runCmd, compareCmd, planetsCmd, presetsCmd, optimizeCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, scenarioCmd, sweepCmd, monteCarloCmd, saveConfigCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers the preset, then the config file, then any flag the
// user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("planet") {
		cfg.Planet = planet
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("angle") {
		cfg.Angle = angle
	}
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("radius") {
		cfg.Radius = radius
	}
	if flags.Changed("drag") {
		cfg.Drag = drag
	}
	if flags.Changed("ideal") {
		cfg.ShowIdeal = showIdeal
	}
	return cfg, nil
}

func simulate(cmd *cobra.Command) (*config.Config, *trajectory.Run, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	run, err := trajectory.NewEngine(slog.Default()).Simulate(cfg.Request())
	if err != nil {
		return nil, nil, err
	}
	return cfg, run, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunInteractive(*cfg)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, run, err := simulate(cmd)
	if err != nil {
		return err
	}

	fmt.Println(viz.RenderSummary(run))
	fmt.Println()
	fmt.Println(viz.Plot(run, width, height, cfg.ShowIdeal && run.DragEnabled))
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	l := cfg.Launch()
	if err := l.Validate(); err != nil {
		return err
	}
	env := environment.Select(cfg.Planet)

	type row struct {
		name    string
		samples []trajectory.Sample
		elapsed time.Duration
		note    string
	}
	var rows []row

	start := time.Now()
	ideal, err := trajectory.Ideal(l.Speed, l.AngleDeg, env.Gravity)
	if err != nil {
		return err
	}
	rows = append(rows, row{string(trajectory.MethodAnalytic), ideal, time.Since(start), "no drag"})

	start = time.Now()
	res, err := trajectory.NewEngine(slog.Default()).Drag(l, env)
	if err != nil {
		return err
	}
	note := ""
	if res.Fallback != nil {
		note = "fallback: " + res.Fallback.Error()
	}
	rows = append(rows, row{string(res.Method), res.Samples, time.Since(start), note})

	start = time.Now()
	euler := trajectory.EulerDrag(l, env)
	rows = append(rows, row{string(trajectory.MethodEuler), euler, time.Since(start), fmt.Sprintf("dt=%g", trajectory.EulerStep)})

	fmt.Printf("comparing solutions on %s (speed=%.1f m/s, angle=%.1f°)\n\n", env.Name, l.Speed, l.AngleDeg)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tRANGE\tMAX_HEIGHT\tFLIGHT_TIME\tSAMPLES\tTIME_MS\tNOTE")
	for _, r := range rows {
		s := metrics.Summarize(r.samples)
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%d\t%.2f\t%s\n",
			r.name, s.Range, s.MaxHeight, s.FlightTime, s.Samples, float64(r.elapsed.Microseconds())/1000, r.note)
	}
	return w.Flush()
}

func listPlanets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLANET\tGRAVITY\tAIR_DENSITY\tDRAG")
	for _, env := range environment.Planets() {
		active := "no"
		if env.HasAtmosphere() {
			active = "yes"
		}
		fmt.Fprintf(w, "%s\t%.2f m/s²\t%.3f kg/m³\t%s\n", env.Name, env.Gravity, env.AirDensity, active)
	}
	return w.Flush()
}

func optimizeAngle(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	env := environment.Select(cfg.Planet)

	engine := trajectory.NewEngine(slog.Default())
	out, err := optim.BestAngle(context.Background(), engine, env, cfg.Launch(), optim.Grid(fromAngle, toAngle, steps))
	if err != nil {
		return err
	}

	fmt.Printf("best angle on %s: %.2f° (range %.3f m)\n", env.Name, out.Best.Value, out.Best.Score)
	if ideal, err := trajectory.IdealRange(cfg.Speed, 45, env.Gravity); err == nil {
		fmt.Printf("drag-free optimum: 45.00° (range %.3f m)\n", ideal)
	}
	return nil
}

func exportRun(cmd *cobra.Command, ext string, write func(io.Writer, *trajectory.Run) error) error {
	_, run, err := simulate(cmd)
	if err != nil {
		return err
	}

	if outFile == "-" {
		return write(os.Stdout, run)
	}

	path := outFile
	if path == "" {
		path = export.FileName(run, ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := write(f, run); err != nil {
		return err
	}
	fmt.Printf("exported %d samples to %s\n", len(run.Real), path)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %s\n\n", sc.Name, sc.Description)
	results, err := automation.RunScenario(context.Background(), trajectory.NewEngine(slog.Default()), sc)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPLANET\tSPEED\tANGLE\tMETHOD\tRANGE\tMAX_HEIGHT\tFLIGHT_TIME")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%s\t%.3f\t%.3f\t%.3f\n",
			r.Name, r.Run.Env.Name, r.Run.Launch.Speed, r.Run.Launch.AngleDeg, r.Run.Method,
			r.Summary.Range, r.Summary.MaxHeight, r.Summary.FlightTime)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sweep := &automation.ParameterSweep{
		Env:      environment.Select(cfg.Planet),
		Base:     cfg.Launch(),
		Param:    automation.Param(sweepParam),
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	}

	results, err := automation.RunSweep(context.Background(), trajectory.NewEngine(slog.Default()), sweep)
	if err != nil {
		return err
	}

	ranges := make([]float64, len(results))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tRANGE\tMAX_HEIGHT\tFLIGHT_TIME\tMETHOD\n", strings.ToUpper(sweepParam))
	for i, r := range results {
		ranges[i] = r.Summary.Range
		fmt.Fprintf(w, "%.3f\t%.3f\t%.3f\t%.3f\t%s\n", r.Value, r.Summary.Range, r.Summary.MaxHeight, r.Summary.FlightTime, r.Method)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(ranges,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("range (m) vs %s on %s", sweepParam, sweep.Env.Name)),
	))
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	mc := &automation.MonteCarloConfig{
		Env:         environment.Select(cfg.Planet),
		Base:        cfg.Launch(),
		SpeedSpread: speedSpread,
		AngleSpread: angleSpread,
		NumTrials:   trials,
		Seed:        mcSeed,
	}

	results, err := automation.RunMonteCarlo(context.Background(), trajectory.NewEngine(slog.Default()), mc)
	if err != nil {
		return err
	}
	d := automation.MonteCarloStats(results)

	fmt.Printf("monte carlo on %s: %d trials (seed %d)\n", mc.Env.Name, len(results), mcSeed)
	fmt.Printf("  range: %.3f ± %.3f m (min %.3f, max %.3f)\n", d.MeanRange, d.StdRange, d.MinRange, d.MaxRange)
	fmt.Printf("  mean max height: %.3f m\n", d.MeanHeight)
	fmt.Printf("  landed: %d/%d\n", d.LandedCount, len(results))
	return nil
}
