package trajectory

import (
	"math"

	"github.com/san-kum/trajsim/internal/dynamo"
	"github.com/san-kum/trajsim/internal/environment"
)

// minDragSpeed is the speed below which drag is dropped; the drag direction
// vx/v, vy/v is ill-conditioned near v=0.
const minDragSpeed = 0.01

// Projectile is a point mass under constant gravity and quadratic drag
// opposing the velocity. State layout is [vx, vy, x, y].
type Projectile struct {
	Mass    float64
	Radius  float64
	Gravity float64
	Density float64
	Cd      float64

	area float64
	drag bool
}

func NewProjectile(l Launch, env environment.Environment) *Projectile {
	return &Projectile{
		Mass:    l.Mass,
		Radius:  l.Radius,
		Gravity: env.Gravity,
		Density: env.AirDensity,
		Cd:      env.DragCoefficient,
		area:    math.Pi * l.Radius * l.Radius,
		drag:    env.HasAtmosphere(),
	}
}

func (p *Projectile) StateDim() int {
	return 4
}

func (p *Projectile) Derive(x dynamo.State, t float64) dynamo.State {
	vx, vy := x[0], x[1]
	ax, ay := p.Acceleration(vx, vy)
	return dynamo.State{ax, ay, vx, vy}
}

// Acceleration returns gravity plus drag for the given velocity.
func (p *Projectile) Acceleration(vx, vy float64) (float64, float64) {
	ax, ay := 0.0, -p.Gravity

	v := math.Hypot(vx, vy)
	if p.drag && v > minDragSpeed {
		// F_d = ½ ρ Cd A v²
		fd := 0.5 * p.Density * p.Cd * p.area * v * v
		k := fd / (p.Mass * v)
		ax -= k * vx
		ay -= k * vy
	}
	return ax, ay
}
