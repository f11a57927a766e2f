package optim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/trajsim/internal/dynamo"
	"github.com/san-kum/trajsim/internal/environment"
	"github.com/san-kum/trajsim/internal/metrics"
	"github.com/san-kum/trajsim/internal/trajectory"
	"gonum.org/v1/gonum/floats"
)

// Objective scores one parameter value; higher is better.
type Objective func(value float64) (float64, error)

type Point struct {
	Value float64 `json:"value"`
	Score float64 `json:"score"`
}

type Outcome struct {
	Best   Point   `json:"best"`
	Points []Point `json:"points"`
}

// GridSearch evaluates an objective over a fixed set of values.
type GridSearch struct {
	values   []float64
	minChunk int
}

func NewGridSearch(values []float64) *GridSearch {
	return &GridSearch{values: values, minChunk: 4}
}

// Grid returns n evenly spaced values over [lo, hi].
func Grid(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Search evaluates every value concurrently and returns them in grid order
// with the maximum. Ties keep the earliest value.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (Outcome, error) {
	if len(g.values) == 0 {
		return Outcome{}, errors.New("optim: empty search grid")
	}

	points := make([]Point, len(g.values))
	err := dynamo.RunAll(ctx, len(g.values), g.minChunk, func(i int) error {
		score, err := objective(g.values[i])
		if err != nil {
			return err
		}
		points[i] = Point{Value: g.values[i], Score: score}
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	best := Point{Score: math.Inf(-1)}
	for _, p := range points {
		if p.Score > best.Score {
			best = p
		}
	}
	return Outcome{Best: best, Points: points}, nil
}

// BestAngle searches launch angles for the longest drag range of l under env.
func BestAngle(ctx context.Context, engine *trajectory.Engine, env environment.Environment, l trajectory.Launch, angles []float64) (Outcome, error) {
	return NewGridSearch(angles).Search(ctx, func(angle float64) (float64, error) {
		launch := l
		launch.AngleDeg = angle
		res, err := engine.Drag(launch, env)
		if err != nil {
			return 0, err
		}
		return metrics.Summarize(res.Samples).Range, nil
	})
}
