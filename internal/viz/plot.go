package viz

import (
	"fmt"
	"math"
	"sort"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/trajsim/internal/trajectory"
)

// Profile resamples a path onto n evenly spaced columns over [0, xMax] by
// linear interpolation of height. Columns past the end of the path are 0.
func Profile(samples []trajectory.Sample, xMax float64, n int) []float64 {
	out := make([]float64, n)
	if len(samples) == 0 || n == 0 || xMax <= 0 {
		return out
	}

	for i := range out {
		x := xMax * float64(i) / math.Max(1, float64(n-1))
		j := sort.Search(len(samples), func(k int) bool { return samples[k].X >= x })
		switch {
		case j == len(samples):
			out[i] = 0
		case j == 0 || samples[j].X == x:
			out[i] = samples[j].Y
		default:
			a, b := samples[j-1], samples[j]
			f := (x - a.X) / (b.X - a.X)
			out[i] = a.Y + f*(b.Y-a.Y)
		}
		if out[i] < 0 {
			out[i] = 0
		}
	}
	return out
}

// Plot draws height against distance for the flown path and, optionally,
// the ideal one.
func Plot(run *trajectory.Run, width, height int, showIdeal bool) string {
	xMax := lastX(run.Real)
	if showIdeal {
		xMax = math.Max(xMax, lastX(run.Ideal))
	}
	if xMax <= 0 {
		return Subtle.Render("nothing to plot")
	}

	var (
		series [][]float64
		colors []asciigraph.AnsiColor
		legend string
	)
	if showIdeal {
		series = append(series, Profile(run.Ideal, xMax, width))
		colors = append(colors, asciigraph.Blue)
		legend = "blue: ideal  "
	}
	series = append(series, Profile(run.Real, xMax, width))
	colors = append(colors, asciigraph.Red)
	legend += fmt.Sprintf("red: %s", label(run))

	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("height (m) over %.1f m  |  %s", xMax, legend)),
	)
}

func label(run *trajectory.Run) string {
	if !run.DragEnabled {
		return "no drag"
	}
	return "with drag (" + string(run.Method) + ")"
}

func lastX(samples []trajectory.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	return samples[len(samples)-1].X
}
