package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/trajsim/internal/dynamo"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) StateDim() int { return 2 }

func (h *harmonicOscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestRK45_Step(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}

	expected := math.Cos(1000 * dt)
	if math.Abs(x[0]-expected) > 1e-8 {
		t.Errorf("position error too large: got %.10f, expected %.10f", x[0], expected)
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	initialEnergy := dyn.Energy(x0)
	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 10000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	drift := math.Abs(dyn.Energy(x)-initialEnergy) / initialEnergy
	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_AttemptErrorNorm(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}
	f0 := dyn.Derive(x0, 0)

	_, _, small := integrator.Attempt(dyn, x0, f0, 0, 0.01, 1e-6, 1e-9)
	_, _, large := integrator.Attempt(dyn, x0, f0, 0, 0.5, 1e-6, 1e-9)

	if !(small < large) {
		t.Errorf("expected error norm to grow with step: %e vs %e", small, large)
	}
	if small > 1 {
		t.Errorf("small step should be accepted, norm %e", small)
	}
}

func TestRK45_NextStep(t *testing.T) {
	r := NewRK45()

	if got := r.NextStep(0.1, 0, false); got != 0.1*r.maxScale {
		t.Errorf("zero error: got %v", got)
	}
	if got := r.NextStep(0.1, 1e6, false); got != 0.1*r.minScale {
		t.Errorf("huge error: got %v", got)
	}
	if got := r.NextStep(0.1, 1e-8, true); got > 0.1 {
		t.Errorf("step grew after rejection: %v", got)
	}
}

func TestEuler_VelocityFirst(t *testing.T) {
	// constant downward acceleration on state [vy, y]
	sys := constantAccel{a: -10}
	x := NewEuler().Step(sys, dynamo.State{0, 0}, 0, 0.1)

	if math.Abs(x[0]-(-1.0)) > 1e-12 {
		t.Errorf("velocity = %v, want -1", x[0])
	}
	if math.Abs(x[1]-(-0.1)) > 1e-12 {
		t.Errorf("position = %v, want -0.1 (updated velocity drives position)", x[1])
	}
}

type constantAccel struct{ a float64 }

func (c constantAccel) StateDim() int { return 2 }
func (c constantAccel) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{c.a, x[0]}
}
