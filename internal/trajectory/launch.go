package trajectory

import (
	"math"

	"github.com/san-kum/trajsim/internal/dynamo"
	"github.com/san-kum/trajsim/internal/environment"
)

// GroundTolerance is how far below y=0 a sample may sit and still be kept.
const GroundTolerance = 0.01

// Launch describes the initial conditions and the projectile body.
type Launch struct {
	Speed    float64 `json:"speed" yaml:"speed"`   // m/s
	AngleDeg float64 `json:"angle" yaml:"angle"`   // degrees above horizontal
	Mass     float64 `json:"mass" yaml:"mass"`     // kg
	Radius   float64 `json:"radius" yaml:"radius"` // m
}

// Sample is one point of a trajectory.
type Sample struct {
	Time float64 `json:"t"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Validate checks the launch is physically meaningful.
func (l Launch) Validate() error {
	if !finite(l.Speed) || l.Speed <= 0 {
		return dynamo.InvalidParameter("speed", l.Speed, "must be positive")
	}
	if !finite(l.AngleDeg) || l.AngleDeg <= 0 || l.AngleDeg >= 90 {
		return dynamo.InvalidParameter("angle", l.AngleDeg, "must be in (0, 90) degrees")
	}
	if !finite(l.Mass) || l.Mass <= 0 {
		return dynamo.InvalidParameter("mass", l.Mass, "must be positive")
	}
	if !finite(l.Radius) || l.Radius <= 0 {
		return dynamo.InvalidParameter("radius", l.Radius, "must be positive")
	}
	return nil
}

func validateEnvironment(env environment.Environment) error {
	if !finite(env.Gravity) || env.Gravity <= 0 {
		return dynamo.InvalidParameter("gravity", env.Gravity, "must be positive")
	}
	if !finite(env.AirDensity) || env.AirDensity < 0 {
		return dynamo.InvalidParameter("air_density", env.AirDensity, "must be non-negative")
	}
	if !finite(env.DragCoefficient) || env.DragCoefficient < 0 {
		return dynamo.InvalidParameter("drag_coefficient", env.DragCoefficient, "must be non-negative")
	}
	return nil
}

// InitialState returns [vx, vy, x, y] at launch.
func InitialState(l Launch) dynamo.State {
	sin, cos := math.Sincos(radians(l.AngleDeg))
	return dynamo.State{l.Speed * cos, l.Speed * sin, 0, 0}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
