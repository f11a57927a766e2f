// Package trajectory computes projectile flight paths under a planetary
// environment.
//
// Two solvers are provided:
//
//   - [Ideal]: the closed-form drag-free parabola sampled on a uniform grid
//   - [Drag]: quadratic air drag integrated with adaptive RK45 and a terminal
//     ground-contact event, falling back to fixed-step [EulerDrag] when the
//     adaptive solve yields nothing usable
//
// [Drag] never reports integration failures to its caller; the returned
// [Result] is tagged with the [Method] that produced it instead.
package trajectory
