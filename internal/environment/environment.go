// Package environment holds the planetary gravity and atmosphere presets a
// trajectory is computed under.
package environment

import "strings"

// DragCoefficient of a smooth sphere.
const DragCoefficient = 0.47

// atmosphereThreshold is the density below which drag is ignored.
const atmosphereThreshold = 0.001

// Environment is an immutable gravity/atmosphere preset. Values are replaced
// wholesale on selection and passed by value into every computation.
type Environment struct {
	Name            string  `json:"name" yaml:"name"`
	Gravity         float64 `json:"gravity" yaml:"gravity"`         // m/s²
	AirDensity      float64 `json:"air_density" yaml:"air_density"` // kg/m³
	DragCoefficient float64 `json:"drag_coefficient" yaml:"drag_coefficient"`
}

var (
	earth   = Environment{Name: "Earth", Gravity: 9.81, AirDensity: 1.225, DragCoefficient: DragCoefficient}
	moon    = Environment{Name: "Moon", Gravity: 1.62, AirDensity: 0.0, DragCoefficient: DragCoefficient}
	mars    = Environment{Name: "Mars", Gravity: 3.71, AirDensity: 0.02, DragCoefficient: DragCoefficient}
	jupiter = Environment{Name: "Jupiter", Gravity: 24.79, AirDensity: 0.16, DragCoefficient: DragCoefficient}
)

// The presets are handed out by value so callers cannot alter the table.
func Earth() Environment   { return earth }
func Moon() Environment    { return moon }
func Mars() Environment    { return mars }
func Jupiter() Environment { return jupiter }

// match order matters: the first key contained in the name wins.
var presets = []struct {
	key string
	env Environment
}{
	{"earth", earth},
	{"moon", moon},
	{"mars", mars},
	{"jupiter", jupiter},
}

// Select maps a planet name to its preset by case-insensitive substring match,
// so "Earth (9.81 m/s²)" selects Earth. Unknown names fall back to Earth.
func Select(name string) Environment {
	lower := strings.ToLower(name)
	for _, p := range presets {
		if strings.Contains(lower, p.key) {
			return p.env
		}
	}
	return earth
}

// Planets lists the presets in display order.
func Planets() []Environment {
	out := make([]Environment, len(presets))
	for i, p := range presets {
		out[i] = p.env
	}
	return out
}

// Names lists the preset names in display order.
func Names() []string {
	out := make([]string, len(presets))
	for i, p := range presets {
		out[i] = p.env.Name
	}
	return out
}

// HasAtmosphere reports whether the air is dense enough for drag to apply.
func (e Environment) HasAtmosphere() bool {
	return e.AirDensity > atmosphereThreshold
}
