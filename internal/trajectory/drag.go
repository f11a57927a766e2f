package trajectory

import (
	"log/slog"

	"github.com/san-kum/trajsim/internal/dynamo"
	"github.com/san-kum/trajsim/internal/environment"
	"github.com/san-kum/trajsim/internal/integrators"
)

const (
	// TimeSpan caps modelled flight time for the adaptive solve.
	TimeSpan = 50.0
	// MaxStep caps the adaptive step near the low-speed drag singularity.
	MaxStep = 1e-3
	RTol    = 1e-9
	ATol    = 1e-12
	// StepBudget bounds accepted plus rejected adaptive attempts: a full span
	// at MaxStep with room for rejections.
	StepBudget = int(TimeSpan/MaxStep) + 10000

	EulerStep     = 0.0005
	EulerMaxSteps = 20000
)

// Method names the integrator that produced a result.
type Method string

const (
	MethodAnalytic Method = "analytic"
	MethodRK45     Method = "rk45"
	MethodEuler    Method = "euler"
)

// Result is a drag trajectory tagged with its fidelity.
type Result struct {
	Samples []Sample
	Method  Method
	// Fallback is the adaptive failure that triggered Euler integration.
	Fallback error
	// Landed is false when the span or step cap ran out mid-air.
	Landed bool
}

// Engine computes drag trajectories. The zero value is ready to use.
type Engine struct {
	Logger *slog.Logger
	// Options overrides the adaptive solver settings; the ground event is
	// always added by the engine.
	Options *integrators.Options
}

func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{Logger: logger}
}

var defaultEngine = &Engine{}

// Drag integrates the trajectory with quadratic drag using the default engine.
func Drag(l Launch, env environment.Environment) (Result, error) {
	return defaultEngine.Drag(l, env)
}

// SolverOptions returns the adaptive settings used for drag trajectories.
func SolverOptions() integrators.Options {
	return integrators.Options{
		T0:       0,
		TEnd:     TimeSpan,
		RTol:     RTol,
		ATol:     ATol,
		MaxStep:  MaxStep,
		MaxSteps: StepBudget,
	}
}

// Drag validates its inputs and integrates with adaptive RK45. If the
// adaptive solve fails or keeps no sample, the fixed-step Euler path is used
// instead. Only invalid parameters are reported as errors.
func (e *Engine) Drag(l Launch, env environment.Environment) (Result, error) {
	if err := l.Validate(); err != nil {
		return Result{}, err
	}
	if err := validateEnvironment(env); err != nil {
		return Result{}, err
	}

	samples, landed, err := e.adaptive(l, env)
	if err == nil {
		return Result{Samples: samples, Method: MethodRK45, Landed: landed}, nil
	}

	e.logger().Warn("adaptive drag solve failed, using euler fallback",
		"error", err,
		"speed", l.Speed,
		"angle", l.AngleDeg,
		"planet", env.Name,
	)

	raw := EulerDrag(l, env)
	landed = raw[len(raw)-1].Y < -GroundTolerance
	return Result{
		Samples:  aboveGround(raw),
		Method:   MethodEuler,
		Fallback: err,
		Landed:   landed,
	}, nil
}

// adaptive runs the high-fidelity solve. Every failure comes back as an
// *dynamo.IntegrationError or an options error; nothing panics through.
func (e *Engine) adaptive(l Launch, env environment.Environment) ([]Sample, bool, error) {
	opts := SolverOptions()
	if e.Options != nil {
		opts = *e.Options
	}
	opts.Events = append(opts.Events[:len(opts.Events):len(opts.Events)], integrators.Event{
		Name:      "ground",
		Fn:        func(t float64, x dynamo.State) float64 { return x[3] },
		Terminal:  true,
		Direction: -1,
	})

	sol, err := integrators.Solve(NewProjectile(l, env), InitialState(l), opts)
	if err != nil {
		return nil, false, err
	}

	samples := make([]Sample, 0, len(sol.T))
	for i, t := range sol.T {
		x := sol.X[i]
		if x[3] >= -GroundTolerance {
			samples = append(samples, Sample{Time: t, X: x[2], Y: x[3]})
		}
	}
	if len(samples) == 0 {
		return nil, false, &dynamo.IntegrationError{Step: sol.Steps, Time: sol.T[len(sol.T)-1], Wrapped: dynamo.ErrNoSamples}
	}
	return samples, sol.Terminated, nil
}

// EulerDrag integrates with fixed-step Euler for at most EulerMaxSteps steps,
// stopping once the projectile is more than GroundTolerance below ground. The
// closing below-ground point is included. The result always starts with the
// origin; an invalid launch yields the origin alone.
func EulerDrag(l Launch, env environment.Environment) []Sample {
	out := []Sample{{}}
	if l.Validate() != nil || validateEnvironment(env) != nil {
		return out
	}

	sys := NewProjectile(l, env)
	stepper := integrators.NewEuler()
	x := InitialState(l)

	for step := 0; step < EulerMaxSteps; step++ {
		if x[3] < -GroundTolerance {
			break
		}
		t := float64(step) * EulerStep
		x = stepper.Step(sys, x, t, EulerStep)
		out = append(out, Sample{Time: float64(step+1) * EulerStep, X: x[2], Y: x[3]})
	}
	return out
}

func aboveGround(samples []Sample) []Sample {
	out := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if s.Y >= -GroundTolerance {
			out = append(out, s)
		}
	}
	return out
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
