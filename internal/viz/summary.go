package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/trajsim/internal/metrics"
	"github.com/san-kum/trajsim/internal/trajectory"
)

// RenderSummary lays out the metric cards for a run: the flown path, the
// ideal path when drag is on, and the efficiency of one against the other.
func RenderSummary(run *trajectory.Run) string {
	flown := metrics.Summarize(run.Real)

	var b strings.Builder
	b.WriteString(Title.Render(fmt.Sprintf("%s  g=%.2f m/s²  ρ=%.3f kg/m³", run.Env.Name, run.Env.Gravity, run.Env.AirDensity)))
	b.WriteString("\n\n")

	cards := []string{
		card("Range", fmt.Sprintf("%.2f m", flown.Range)),
		card("Max Height", fmt.Sprintf("%.2f m", flown.MaxHeight)),
		card("Flight Time", fmt.Sprintf("%.2f s", flown.FlightTime)),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")

	if run.DragEnabled {
		ideal := metrics.Summarize(run.Ideal)
		cmp := metrics.Compare(ideal, flown)
		fmt.Fprintf(&b, "%s %s  %s\n",
			MetricLabel.Render("ideal range "),
			MetricValue.Render(fmt.Sprintf("%.2f m", ideal.Range)),
			Loss.Render(fmt.Sprintf("-%.1f%% to drag", cmp.RangeLoss)))
		fmt.Fprintf(&b, "%s %s %5.1f%%\n", MetricLabel.Render("range efficiency "), ProgressBar(cmp.RangeEfficiency/100, 20), cmp.RangeEfficiency)
		fmt.Fprintf(&b, "%s %s %5.1f%%\n", MetricLabel.Render("height efficiency"), ProgressBar(cmp.HeightEfficiency/100, 20), cmp.HeightEfficiency)
	}

	b.WriteString(Subtle.Render(metrics.AngleNote(run.Launch.AngleDeg)))
	if run.Fallback != nil {
		b.WriteString("\n")
		b.WriteString(Warning.Render("approximate: computed with fixed-step euler"))
	}
	if !run.Landed {
		b.WriteString("\n")
		b.WriteString(Warning.Render("trajectory truncated before landing"))
	}
	return b.String()
}

func card(label, value string) string {
	return Panel.Render(MetricLabel.Render(label) + "\n" + MetricValue.Render(value))
}
