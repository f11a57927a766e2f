package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/trajsim/internal/trajectory"
)

const (
	SVGWidth  = 800
	SVGHeight = 400
)

// WriteSVG draws the flown path, and the ideal path when drag was on, on a
// shared scale with the ground at the bottom edge.
func WriteSVG(w io.Writer, run *trajectory.Run) error {
	_, err := io.WriteString(w, TrajectorySVG(run, SVGWidth, SVGHeight))
	return err
}

func TrajectorySVG(run *trajectory.Run, width, height int) string {
	series := [][]trajectory.Sample{run.Real}
	colors := []string{"#DC2626"}
	if run.DragEnabled {
		series = append([][]trajectory.Sample{run.Ideal}, series...)
		colors = append([]string{"#2563EB"}, colors...)
	}

	maxX, maxY := 0.0, 0.0
	for _, s := range series {
		for _, p := range s {
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if maxX == 0 {
		maxX = 1
	}
	if maxY == 0 {
		maxY = 1
	}
	// 5% margin on the far side of each axis
	maxX *= 1.05
	maxY *= 1.05

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<text x="8" y="16" fill="#888899" font-family="monospace" font-size="12">%s %.0f m/s %.0f°</text>
`, width, height, width, height, run.Env.Name, run.Launch.Speed, run.Launch.AngleDeg))

	for i, s := range series {
		if len(s) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, colors[i]))
		for j, p := range s {
			x := p.X / maxX * float64(width)
			y := float64(height) - math.Max(p.Y, 0)/maxY*float64(height)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
