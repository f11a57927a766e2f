// Package automation runs scripted batches of launches: yaml scenarios,
// parameter sweeps and Monte Carlo dispersion studies.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/san-kum/trajsim/internal/config"
	"github.com/san-kum/trajsim/internal/dynamo"
	"github.com/san-kum/trajsim/internal/environment"
	"github.com/san-kum/trajsim/internal/metrics"
	"github.com/san-kum/trajsim/internal/trajectory"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of launches.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset, or the defaults, and overrides the
// fields it sets.
type ScenarioStep struct {
	Name   string   `yaml:"name"`
	Preset string   `yaml:"preset"`
	Planet string   `yaml:"planet"`
	Speed  *float64 `yaml:"speed"`
	Angle  *float64 `yaml:"angle"`
	Mass   *float64 `yaml:"mass"`
	Radius *float64 `yaml:"radius"`
	Drag   *bool    `yaml:"drag"`
}

// StepResult is one executed scenario step.
type StepResult struct {
	Name    string
	Run     *trajectory.Run
	Summary metrics.Summary
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Config resolves the step into a full configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Planet != "" {
		cfg.Planet = s.Planet
	}
	if s.Speed != nil {
		cfg.Speed = *s.Speed
	}
	if s.Angle != nil {
		cfg.Angle = *s.Angle
	}
	if s.Mass != nil {
		cfg.Mass = *s.Mass
	}
	if s.Radius != nil {
		cfg.Radius = *s.Radius
	}
	if s.Drag != nil {
		cfg.Drag = *s.Drag
	}
	return cfg, nil
}

// RunScenario executes the steps in order and stops at the first failure,
// returning the results gathered so far.
func RunScenario(ctx context.Context, engine *trajectory.Engine, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		slog.Debug("running scenario step", "scenario", scenario.Name, "step", name, "index", i+1, "total", len(scenario.Steps))

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		run, err := engine.Simulate(cfg.Request())
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		results = append(results, StepResult{Name: name, Run: run, Summary: metrics.Summarize(run.Real)})
	}

	return results, nil
}

// Param names a launch field a sweep can vary.
type Param string

const (
	ParamSpeed  Param = "speed"
	ParamAngle  Param = "angle"
	ParamMass   Param = "mass"
	ParamRadius Param = "radius"
)

func (p Param) apply(l *trajectory.Launch, v float64) error {
	switch p {
	case ParamSpeed:
		l.Speed = v
	case ParamAngle:
		l.AngleDeg = v
	case ParamMass:
		l.Mass = v
	case ParamRadius:
		l.Radius = v
	default:
		return fmt.Errorf("%w: unknown sweep parameter %q", dynamo.ErrInvalidParameter, string(p))
	}
	return nil
}

// ParameterSweep varies one launch field over [Min, Max] in NumSteps values.
type ParameterSweep struct {
	Env      environment.Environment
	Base     trajectory.Launch
	Param    Param
	Min      float64
	Max      float64
	NumSteps int
}

type SweepResult struct {
	Value   float64
	Method  trajectory.Method
	Summary metrics.Summary
}

// RunSweep computes the drag trajectory at every sweep value concurrently.
func RunSweep(ctx context.Context, engine *trajectory.Engine, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps", dynamo.ErrInvalidParameter)
	}

	launches := make([]trajectory.Launch, sweep.NumSteps)
	values := make([]float64, sweep.NumSteps)
	step := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	for i := range launches {
		values[i] = sweep.Min + float64(i)*step
		launches[i] = sweep.Base
		if err := sweep.Param.apply(&launches[i], values[i]); err != nil {
			return nil, err
		}
	}

	results := make([]SweepResult, sweep.NumSteps)
	err := dynamo.RunAll(ctx, sweep.NumSteps, 4, func(i int) error {
		res, err := engine.Drag(launches[i], sweep.Env)
		if err != nil {
			return fmt.Errorf("%s=%g: %w", sweep.Param, values[i], err)
		}
		results[i] = SweepResult{Value: values[i], Method: res.Method, Summary: metrics.Summarize(res.Samples)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// MonteCarloConfig perturbs speed and angle uniformly by up to the given
// spreads around Base.
type MonteCarloConfig struct {
	Env         environment.Environment
	Base        trajectory.Launch
	SpeedSpread float64
	AngleSpread float64
	NumTrials   int
	Seed        int64
}

type MonteCarloResult struct {
	TrialID int
	Launch  trajectory.Launch
	Summary metrics.Summary
	// Landed is false when the trajectory was cut off mid-air.
	Landed bool
}

// RunMonteCarlo runs the perturbed trials. A fixed seed reproduces the same
// trials; perturbed launches outside the valid ranges are clipped back into range.
func RunMonteCarlo(ctx context.Context, engine *trajectory.Engine, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("%w: monte carlo needs at least one trial", dynamo.ErrInvalidParameter)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	launches := make([]trajectory.Launch, cfg.NumTrials)
	for i := range launches {
		l := cfg.Base
		l.Speed = max(0.1, l.Speed+(rng.Float64()-0.5)*2*cfg.SpeedSpread)
		l.AngleDeg = min(89.9, max(0.1, l.AngleDeg+(rng.Float64()-0.5)*2*cfg.AngleSpread))
		launches[i] = l
	}

	results := make([]MonteCarloResult, cfg.NumTrials)
	err := dynamo.RunAll(ctx, cfg.NumTrials, 4, func(i int) error {
		res, err := engine.Drag(launches[i], cfg.Env)
		if err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
		results[i] = MonteCarloResult{
			TrialID: i,
			Launch:  launches[i],
			Summary: metrics.Summarize(res.Samples),
			Landed:  res.Landed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Dispersion summarizes the spread of landing points.
type Dispersion struct {
	MeanRange   float64
	StdRange    float64
	MinRange    float64
	MaxRange    float64
	MeanHeight  float64
	LandedCount int
}

// MonteCarloStats computes the landing dispersion of results.
func MonteCarloStats(results []MonteCarloResult) Dispersion {
	if len(results) == 0 {
		return Dispersion{}
	}

	ranges := make([]float64, len(results))
	heights := make([]float64, len(results))
	d := Dispersion{MinRange: results[0].Summary.Range, MaxRange: results[0].Summary.Range}
	for i, r := range results {
		ranges[i] = r.Summary.Range
		heights[i] = r.Summary.MaxHeight
		d.MinRange = min(d.MinRange, r.Summary.Range)
		d.MaxRange = max(d.MaxRange, r.Summary.Range)
		if r.Landed {
			d.LandedCount++
		}
	}

	d.MeanRange, d.StdRange = stat.MeanStdDev(ranges, nil)
	if len(ranges) == 1 {
		d.StdRange = 0
	}
	d.MeanHeight = stat.Mean(heights, nil)
	return d
}
