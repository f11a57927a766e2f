package integrators

import (
	"math"

	"github.com/san-kum/trajsim/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is the Dormand-Prince 5(4) embedded pair. The fifth-order solution is
// propagated and the fourth-order one drives the error estimate.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// Step takes one fixed step of size dt.
func (r *RK45) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	xNew, _, _ := r.Attempt(sys, x, sys.Derive(x, t), t, dt, 1e-6, 1e-9)
	return xNew
}

// Attempt evaluates one trial step starting from x with derivative f0. It
// returns the candidate state, its derivative (first-same-as-last) and the
// RMS error norm scaled by atol + rtol*max(|x|, |xNew|). A norm <= 1 means
// the step satisfies the tolerances.
func (r *RK45) Attempt(sys dynamo.System, x, f0 dynamo.State, t, dt, rtol, atol float64) (dynamo.State, dynamo.State, float64) {
	n := len(x)
	k1 := f0

	xs := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xs[i] = x[i] + dt*b21*k1[i]
	}
	k2 := sys.Derive(xs, t+a2*dt)

	for i := 0; i < n; i++ {
		xs[i] = x[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	k3 := sys.Derive(xs, t+a3*dt)

	for i := 0; i < n; i++ {
		xs[i] = x[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := sys.Derive(xs, t+a4*dt)

	for i := 0; i < n; i++ {
		xs[i] = x[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := sys.Derive(xs, t+a5*dt)

	for i := 0; i < n; i++ {
		xs[i] = x[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := sys.Derive(xs, t+dt)

	xNew := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7 := sys.Derive(xNew, t+dt)

	sum := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := atol + rtol*math.Max(math.Abs(x[i]), math.Abs(xNew[i]))
		e := errEst / scale
		sum += e * e
	}
	errNorm := math.Sqrt(sum / float64(n))
	if math.IsNaN(errNorm) {
		errNorm = math.Inf(1)
	}

	return xNew, k7, errNorm
}

// NextStep proposes the step that follows a trial of size dt with the given
// error norm. After a rejection in the same step the proposal never grows.
func (r *RK45) NextStep(dt, errNorm float64, rejected bool) float64 {
	var scale float64
	switch {
	case errNorm == 0:
		scale = r.maxScale
	case errNorm > 1:
		scale = math.Max(r.minScale, r.safety*math.Pow(errNorm, -0.2))
	default:
		scale = math.Min(r.maxScale, r.safety*math.Pow(errNorm, -0.2))
	}
	if rejected && scale > 1 {
		scale = 1
	}
	return dt * scale
}
