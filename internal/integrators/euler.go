package integrators

import "github.com/san-kum/trajsim/internal/dynamo"

// Euler is a first-order fixed-step integrator for second-order systems whose
// state is laid out as [velocities..., positions...]. Velocities advance
// first and the updated velocities drive the position update.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	dx := sys.Derive(x, t)
	half := len(x) / 2
	result := make(dynamo.State, len(x))
	for i := 0; i < half; i++ {
		result[i] = x[i] + dt*dx[i]
	}
	for i := half; i < len(x); i++ {
		result[i] = x[i] + dt*result[i-half]
	}
	return result
}
