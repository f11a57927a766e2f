package integrators

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/trajsim/internal/dynamo"
)

// Options configures an adaptive solve.
type Options struct {
	T0        float64
	TEnd      float64
	RTol      float64
	ATol      float64
	MaxStep   float64
	FirstStep float64 // zero selects an initial step automatically
	// MaxSteps caps accepted plus rejected attempts; zero means no cap.
	MaxSteps  int
	Events    []Event
}

func DefaultOptions() Options {
	return Options{
		T0:       0,
		TEnd:     10,
		RTol:     1e-3,
		ATol:     1e-6,
		MaxStep:  math.Inf(1),
		MaxSteps: 100000,
	}
}

// Solution holds every accepted step of a solve, plus the terminal event
// point when one fired.
type Solution struct {
	T          []float64
	X          []dynamo.State
	Events     []EventHit
	Terminated bool
	Steps      int
	Rejected   int
}

func (o Options) validate() error {
	if !(o.TEnd > o.T0) {
		return fmt.Errorf("%w: time span [%g, %g] is empty", dynamo.ErrInvalidParameter, o.T0, o.TEnd)
	}
	if !(o.RTol > 0) || !(o.ATol > 0) {
		return fmt.Errorf("%w: tolerances must be positive", dynamo.ErrInvalidParameter)
	}
	if !(o.MaxStep > 0) {
		return fmt.Errorf("%w: max step must be positive", dynamo.ErrInvalidParameter)
	}
	if o.MaxSteps < 0 {
		return fmt.Errorf("%w: step budget must not be negative", dynamo.ErrInvalidParameter)
	}
	return nil
}

// Solve integrates sys from x0 over [T0, TEnd] with RK45 and error control.
// A terminal event stops integration at the located crossing and that point
// closes the solution. A run that needs more than MaxSteps attempts fails
// with ErrTooManySteps. On failure the partial solution is returned alongside
// an *dynamo.IntegrationError.
func Solve(sys dynamo.System, x0 dynamo.State, opts Options) (*Solution, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(x0) != sys.StateDim() {
		return nil, fmt.Errorf("%w: state has %d components, system expects %d",
			dynamo.ErrInvalidParameter, len(x0), sys.StateDim())
	}
	if !x0.IsValid() {
		return nil, &dynamo.IntegrationError{Time: opts.T0, Wrapped: dynamo.ErrInvalidState}
	}

	rk := NewRK45()
	t := opts.T0
	x := x0.Clone()
	f := sys.Derive(x, t)

	sol := &Solution{
		T: []float64{t},
		X: []dynamo.State{x.Clone()},
	}

	g := make([]float64, len(opts.Events))
	for i, ev := range opts.Events {
		g[i] = ev.Fn(t, x)
	}

	h := opts.FirstStep
	if h <= 0 {
		h = initialStep(sys, x, f, t, opts)
	}

	for t < opts.TEnd {
		rejected := false
		var (
			tNew, hStep float64
			xNew, fNew  dynamo.State
		)

		for {
			if opts.MaxSteps > 0 && sol.Steps+sol.Rejected >= opts.MaxSteps {
				return sol, &dynamo.IntegrationError{Step: sol.Steps, Time: t, Wrapped: dynamo.ErrTooManySteps}
			}
			h = math.Min(h, opts.MaxStep)
			if h < 10*epsilon(math.Abs(t)) {
				return sol, &dynamo.IntegrationError{Step: sol.Steps, Time: t, Wrapped: dynamo.ErrStepTooSmall}
			}

			hStep = h
			tNew = t + hStep
			if tNew >= opts.TEnd {
				tNew = opts.TEnd
				hStep = tNew - t
			}

			var errNorm float64
			xNew, fNew, errNorm = rk.Attempt(sys, x, f, t, hStep, opts.RTol, opts.ATol)
			if errNorm <= 1 {
				h = rk.NextStep(hStep, errNorm, rejected)
				break
			}

			sol.Rejected++
			rejected = true
			h = rk.NextStep(hStep, errNorm, true)
		}

		sol.Steps++
		if !xNew.IsValid() || !fNew.IsValid() {
			return sol, &dynamo.IntegrationError{Step: sol.Steps, Time: tNew, Wrapped: dynamo.ErrInvalidState}
		}

		interp := hermite{t0: t, h: tNew - t, x0: x, x1: xNew, f0: f, f1: fNew, openStart: t == opts.T0}
		if hit, stop := detectEvents(opts.Events, interp, g, tNew, xNew); len(hit) > 0 {
			sol.Events = append(sol.Events, hit...)
			if stop {
				last := hit[len(hit)-1]
				if last.T > sol.T[len(sol.T)-1] {
					sol.T = append(sol.T, last.T)
					sol.X = append(sol.X, last.X)
				}
				sol.Terminated = true
				return sol, nil
			}
		}

		t, x, f = tNew, xNew, fNew
		sol.T = append(sol.T, t)
		sol.X = append(sol.X, x.Clone())
	}

	return sol, nil
}

// detectEvents evaluates events at the end of an accepted step, updates g in
// place and returns the crossings in time order, cut at the first terminal one.
func detectEvents(events []Event, interp hermite, g []float64, tNew float64, xNew dynamo.State) ([]EventHit, bool) {
	var hits []EventHit
	terminalAt := math.Inf(1)

	for i, ev := range events {
		gNew := ev.Fn(tNew, xNew)
		if ev.triggered(g[i], gNew) {
			tr := interp.locate(ev, g[i], gNew)
			hits = append(hits, EventHit{Name: ev.Name, T: tr, X: interp.at(tr)})
			if ev.Terminal && tr < terminalAt {
				terminalAt = tr
			}
		}
		g[i] = gNew
	}

	if len(hits) == 0 {
		return nil, false
	}

	slices.SortFunc(hits, func(a, b EventHit) int { return cmp.Compare(a.T, b.T) })
	if math.IsInf(terminalAt, 1) {
		return hits, false
	}

	cut := hits[:0]
	for _, h := range hits {
		if h.T <= terminalAt {
			cut = append(cut, h)
		}
	}
	return cut, true
}

// initialStep follows the Hairer-Wanner starting step heuristic.
func initialStep(sys dynamo.System, x, f dynamo.State, t float64, opts Options) float64 {
	n := float64(len(x))
	scale := make([]float64, len(x))
	d0, d1 := 0.0, 0.0
	for i := range x {
		scale[i] = opts.ATol + math.Abs(x[i])*opts.RTol
		d0 += (x[i] / scale[i]) * (x[i] / scale[i])
		d1 += (f[i] / scale[i]) * (f[i] / scale[i])
	}
	d0 = math.Sqrt(d0 / n)
	d1 = math.Sqrt(d1 / n)

	h0 := 1e-6
	if d0 >= 1e-5 && d1 >= 1e-5 {
		h0 = 0.01 * d0 / d1
	}
	h0 = math.Min(h0, opts.TEnd-opts.T0)

	x1 := make(dynamo.State, len(x))
	for i := range x {
		x1[i] = x[i] + h0*f[i]
	}
	f1 := sys.Derive(x1, t+h0)

	d2 := 0.0
	for i := range x {
		d := (f1[i] - f[i]) / scale[i]
		d2 += d * d
	}
	d2 = math.Sqrt(d2/n) / h0

	var h1 float64
	if d1 <= 1e-15 && d2 <= 1e-15 {
		h1 = math.Max(1e-6, h0*1e-3)
	} else {
		h1 = math.Pow(0.01/math.Max(d1, d2), 1.0/5.0)
	}

	return math.Min(100*h0, h1)
}
