// Package metrics aggregates trajectory samples into the figures shown next
// to a plot: range, apex height, flight time and drag efficiency.
package metrics

import (
	"math"

	"github.com/san-kum/trajsim/internal/trajectory"
)

// Metric folds a sample sequence into a single value.
type Metric interface {
	Name() string
	Observe(s trajectory.Sample)
	Value() float64
	Reset()
}

// Range is the horizontal distance of the last sample.
type Range struct {
	last float64
}

func NewRange() *Range { return &Range{} }

func (r *Range) Name() string                { return "range" }
func (r *Range) Observe(s trajectory.Sample) { r.last = s.X }
func (r *Range) Value() float64              { return r.last }
func (r *Range) Reset()                      { r.last = 0 }

type MaxHeight struct {
	max  float64
	seen bool
}

func NewMaxHeight() *MaxHeight { return &MaxHeight{} }

func (m *MaxHeight) Name() string { return "max_height" }

func (m *MaxHeight) Observe(s trajectory.Sample) {
	if !m.seen || s.Y > m.max {
		m.max = s.Y
		m.seen = true
	}
}

func (m *MaxHeight) Value() float64 { return m.max }

func (m *MaxHeight) Reset() {
	m.max = 0
	m.seen = false
}

// FlightTime is the time of the last sample.
type FlightTime struct {
	last float64
}

func NewFlightTime() *FlightTime { return &FlightTime{} }

func (f *FlightTime) Name() string                { return "flight_time" }
func (f *FlightTime) Observe(s trajectory.Sample) { f.last = s.Time }
func (f *FlightTime) Value() float64              { return f.last }
func (f *FlightTime) Reset()                      { f.last = 0 }

// Summary is the caller-side aggregation of one trajectory.
type Summary struct {
	Range      float64 `json:"range"`
	MaxHeight  float64 `json:"max_height"`
	FlightTime float64 `json:"flight_time"`
	Samples    int     `json:"samples"`
}

// Summarize runs the standard metrics over samples.
func Summarize(samples []trajectory.Sample) Summary {
	r, h, ft := NewRange(), NewMaxHeight(), NewFlightTime()
	Observe(samples, r, h, ft)
	return Summary{
		Range:      r.Value(),
		MaxHeight:  h.Value(),
		FlightTime: ft.Value(),
		Samples:    len(samples),
	}
}

// Observe feeds every sample to every metric after resetting them.
func Observe(samples []trajectory.Sample, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for _, s := range samples {
		for _, m := range ms {
			m.Observe(s)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Comparison measures how much drag cost relative to the ideal path.
type Comparison struct {
	RangeLoss        float64 `json:"range_loss_pct"`
	RangeEfficiency  float64 `json:"range_efficiency_pct"`
	HeightEfficiency float64 `json:"height_efficiency_pct"`
}

// Compare returns percentages clamped to [0, 100]; a zero ideal value yields 0.
func Compare(ideal, actual Summary) Comparison {
	rangeEff := percent(actual.Range, ideal.Range)
	return Comparison{
		RangeLoss:        clamp(100-rangeEff, 0, 100),
		RangeEfficiency:  rangeEff,
		HeightEfficiency: percent(actual.MaxHeight, ideal.MaxHeight),
	}
}

func percent(v, of float64) float64 {
	if of <= 0 {
		return 0
	}
	return clamp(v/of*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// AngleNote describes a launch angle relative to the drag-free optimum.
func AngleNote(angleDeg float64) string {
	switch {
	case math.Abs(angleDeg-45) < 0.5:
		return "optimal angle: 45° gives maximum range without drag"
	case angleDeg < 45:
		return "below the 45° optimum for maximum range"
	default:
		return "above the 45° optimum for maximum range"
	}
}
