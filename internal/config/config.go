package config

import (
	"os"

	"github.com/san-kum/trajsim/internal/trajectory"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPlanet = "earth"
	DefaultSpeed  = 30.0
	DefaultAngle  = 45.0
	DefaultMass   = 0.1
	DefaultRadius = 0.05
)

// Interactive input ranges of the dashboard controls.
const (
	MinSpeed, MaxSpeed   = 10.0, 100.0
	MinAngle, MaxAngle   = 15.0, 75.0
	MinMass, MaxMass     = 0.01, 10.0
	MinRadius, MaxRadius = 0.01, 0.5
)

type Config struct {
	Planet    string  `yaml:"planet"`
	Speed     float64 `yaml:"speed"`
	Angle     float64 `yaml:"angle"`
	Mass      float64 `yaml:"mass"`
	Radius    float64 `yaml:"radius"`
	Drag      bool    `yaml:"drag"`
	ShowIdeal bool    `yaml:"show_ideal"`
}

func DefaultConfig() *Config {
	return &Config{
		Planet:    DefaultPlanet,
		Speed:     DefaultSpeed,
		Angle:     DefaultAngle,
		Mass:      DefaultMass,
		Radius:    DefaultRadius,
		Drag:      true,
		ShowIdeal: true,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Launch() trajectory.Launch {
	return trajectory.Launch{
		Speed:    c.Speed,
		AngleDeg: c.Angle,
		Mass:     c.Mass,
		Radius:   c.Radius,
	}
}

func (c *Config) Request() trajectory.Request {
	return trajectory.Request{
		Planet: c.Planet,
		Launch: c.Launch(),
		Drag:   c.Drag,
	}
}

// Clamp pulls the launch values into the interactive control ranges.
func (c *Config) Clamp() {
	c.Speed = clamp(c.Speed, MinSpeed, MaxSpeed)
	c.Angle = clamp(c.Angle, MinAngle, MaxAngle)
	c.Mass = clamp(c.Mass, MinMass, MaxMass)
	c.Radius = clamp(c.Radius, MinRadius, MaxRadius)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
