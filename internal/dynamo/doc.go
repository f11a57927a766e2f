// Package dynamo provides the numerical primitives shared by the trajectory
// engine and its integrators.
//
// The package defines:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [IntegrationError]: failure raised by an integration run
//
// # Example
//
//	sys := trajectory.NewProjectile(launch, env)
//	sol, err := integrators.Solve(sys, x0, integrators.DefaultOptions())
//
// # Thread Safety
//
// States are plain slices and are not safe for concurrent mutation. Every
// integration run owns its states; use [ParallelFor] to fan independent runs
// out over goroutines.
package dynamo
