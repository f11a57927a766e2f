package trajectory

import (
	"github.com/san-kum/trajsim/internal/environment"
)

// Request is one dashboard-style computation: a planet, a launch, and
// whether air resistance is modelled.
type Request struct {
	Planet string
	Launch Launch
	Drag   bool
}

// Run pairs the ideal path with the path actually flown.
type Run struct {
	Env         environment.Environment
	Launch      Launch
	DragEnabled bool
	Ideal       []Sample
	Real        []Sample
	Method      Method
	Fallback    error
	Landed      bool
}

// Simulate resolves the environment and computes both trajectories. Without
// drag the real path is the ideal one.
func (e *Engine) Simulate(req Request) (*Run, error) {
	env := environment.Select(req.Planet)
	if err := req.Launch.Validate(); err != nil {
		return nil, err
	}

	ideal, err := Ideal(req.Launch.Speed, req.Launch.AngleDeg, env.Gravity)
	if err != nil {
		return nil, err
	}

	run := &Run{
		Env:         env,
		Launch:      req.Launch,
		DragEnabled: req.Drag,
		Ideal:       ideal,
		Real:        ideal,
		Method:      MethodAnalytic,
		Landed:      true,
	}
	if !req.Drag {
		return run, nil
	}

	res, err := e.Drag(req.Launch, env)
	if err != nil {
		return nil, err
	}
	run.Real = res.Samples
	run.Method = res.Method
	run.Fallback = res.Fallback
	run.Landed = res.Landed
	return run, nil
}

// Simulate runs req on the default engine.
func Simulate(req Request) (*Run, error) {
	return defaultEngine.Simulate(req)
}
