package config

import "sort"

var Presets = map[string]*Config{
	"default": {
		Planet: "earth", Speed: 30, Angle: 45, Mass: 0.1, Radius: 0.05, Drag: true, ShowIdeal: true,
	},
	"baseball": {
		Planet: "earth", Speed: 40, Angle: 35, Mass: 0.145, Radius: 0.037, Drag: true, ShowIdeal: true,
	},
	"shotput": {
		Planet: "earth", Speed: 14, Angle: 40, Mass: 7.26, Radius: 0.06, Drag: true, ShowIdeal: true,
	},
	"pingpong": {
		Planet: "earth", Speed: 20, Angle: 30, Mass: 0.0027, Radius: 0.02, Drag: true, ShowIdeal: true,
	},
	"lunar_golf": {
		Planet: "moon", Speed: 60, Angle: 45, Mass: 0.046, Radius: 0.021, Drag: true, ShowIdeal: true,
	},
	"mars_cannon": {
		Planet: "mars", Speed: 100, Angle: 45, Mass: 5, Radius: 0.1, Drag: true, ShowIdeal: true,
	},
	"jupiter_storm": {
		Planet: "jupiter", Speed: 80, Angle: 60, Mass: 0.5, Radius: 0.1, Drag: true, ShowIdeal: true,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
