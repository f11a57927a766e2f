package trajectory

import (
	"math"

	"github.com/san-kum/trajsim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// IdealSamples is the size of the uniform time grid of the analytic path.
const IdealSamples = 200

// groundSnap keeps the last grid point, which lands on the ground at t = T
// and may round to a tiny negative height.
const groundSnap = 1e-9

// Ideal returns the drag-free trajectory sampled at IdealSamples uniform
// times over the flight. Sampling stops at the first point below ground, so
// the result may be shorter than the grid. A zero flight time yields the
// origin alone.
func Ideal(speed, angleDeg, gravity float64) ([]Sample, error) {
	if err := validateIdeal(speed, angleDeg, gravity); err != nil {
		return nil, err
	}

	sin, cos := math.Sincos(radians(angleDeg))
	vx, vy := speed*cos, speed*sin

	tFlight := 2 * vy / gravity
	if tFlight == 0 {
		return []Sample{{}}, nil
	}

	times := make([]float64, IdealSamples)
	floats.Span(times, 0, tFlight)

	out := make([]Sample, 0, IdealSamples)
	for _, t := range times {
		y := vy*t - 0.5*gravity*t*t
		if y < 0 {
			if y < -groundSnap {
				break
			}
			y = 0
		}
		out = append(out, Sample{Time: t, X: vx * t, Y: y})
	}
	return out, nil
}

// IdealFlightTime is the closed-form time of flight 2·v·sinθ/g.
func IdealFlightTime(speed, angleDeg, gravity float64) (float64, error) {
	if err := validateIdeal(speed, angleDeg, gravity); err != nil {
		return 0, err
	}
	return 2 * speed * math.Sin(radians(angleDeg)) / gravity, nil
}

// IdealRange is the closed-form range v²·sin2θ/g.
func IdealRange(speed, angleDeg, gravity float64) (float64, error) {
	if err := validateIdeal(speed, angleDeg, gravity); err != nil {
		return 0, err
	}
	return speed * speed * math.Sin(2*radians(angleDeg)) / gravity, nil
}

func validateIdeal(speed, angleDeg, gravity float64) error {
	if !finite(gravity) || gravity <= 0 {
		return dynamo.InvalidParameter("gravity", gravity, "must be positive")
	}
	if !finite(speed) || speed < 0 {
		return dynamo.InvalidParameter("speed", speed, "must be non-negative")
	}
	if !finite(angleDeg) || angleDeg < 0 || angleDeg > 90 {
		return dynamo.InvalidParameter("angle", angleDeg, "must be in [0, 90] degrees")
	}
	return nil
}
