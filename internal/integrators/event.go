package integrators

import (
	"math"

	"github.com/san-kum/trajsim/internal/dynamo"
)

// Event watches a scalar function of the state during an adaptive solve.
// Direction selects which zero crossings count: negative for falling,
// positive for rising, zero for both.
type Event struct {
	Name      string
	Fn        func(t float64, x dynamo.State) float64
	Terminal  bool
	Direction int
}

// EventHit records a located zero crossing.
type EventHit struct {
	Name string
	T    float64
	X    dynamo.State
}

func (ev Event) triggered(g0, g1 float64) bool {
	up := g0 <= 0 && g1 >= 0
	down := g0 >= 0 && g1 <= 0
	switch {
	case ev.Direction > 0:
		return up
	case ev.Direction < 0:
		return down
	default:
		return up || down
	}
}

// hermite is the cubic interpolant of one accepted step. openStart marks the
// first step of a solve, where an event sitting at zero has not crossed yet.
type hermite struct {
	t0, h     float64
	x0, x1    dynamo.State
	f0, f1    dynamo.State
	openStart bool
}

func (p hermite) at(t float64) dynamo.State {
	s := (t - p.t0) / p.h
	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	out := make(dynamo.State, len(p.x0))
	for i := range out {
		out[i] = h00*p.x0[i] + h10*p.h*p.f0[i] + h01*p.x1[i] + h11*p.h*p.f1[i]
	}
	return out
}

// locate finds the crossing of ev inside the step using the Illinois variant
// of regula falsi on the interpolant.
func (p hermite) locate(ev Event, g0, g1 float64) float64 {
	a, b := p.t0, p.t0+p.h
	ga, gb := g0, g1
	if ga == 0 && !p.openStart {
		return a
	}
	if gb == 0 {
		return b
	}

	side := 0
	prev := math.NaN()
	for i := 0; i < 100; i++ {
		c := (a*gb - b*ga) / (gb - ga)
		if c <= a || c >= b {
			c = 0.5 * (a + b)
		}
		gc := ev.Fn(c, p.at(c))

		tol := 4 * epsilon(math.Max(math.Abs(a), math.Abs(b)))
		if gc == 0 || b-a <= tol || math.Abs(c-prev) <= tol {
			return c
		}
		prev = c

		if math.Signbit(gc) == math.Signbit(gb) {
			b, gb = c, gc
			if side == -1 {
				ga /= 2
			}
			side = -1
		} else {
			a, ga = c, gc
			if side == 1 {
				gb /= 2
			}
			side = 1
		}
	}
	return 0.5 * (a + b)
}

func epsilon(v float64) float64 {
	if v < 1 {
		v = 1
	}
	return math.Nextafter(v, math.Inf(1)) - v
}
