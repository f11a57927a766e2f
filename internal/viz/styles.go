package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette of the dashboard. The ideal and drag colours match the asciigraph
// series colours so the legend reads the same in both.
const (
	colorIdeal  = lipgloss.Color("#2563EB")
	colorDrag   = lipgloss.Color("#DC2626")
	colorAccent = lipgloss.Color("#00ffff")
	colorFocus  = lipgloss.Color("#ff00ff")
	colorMuted  = lipgloss.Color("#666688")
	colorLabel  = lipgloss.Color("#888899")
	colorWarn   = lipgloss.Color("#ffaa00")
	colorGood   = lipgloss.Color("#00ff88")
	colorBorder = lipgloss.Color("#444466")
)

var (
	Panel       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	Title       = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	Selected    = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	Subtle      = lipgloss.NewStyle().Foreground(colorMuted)
	MetricValue = lipgloss.NewStyle().Bold(true).Foreground(colorIdeal)
	MetricLabel = lipgloss.NewStyle().Foreground(colorLabel)
	Warning     = lipgloss.NewStyle().Foreground(colorWarn)
	Loss        = lipgloss.NewStyle().Foreground(colorDrag)
	KeyHint     = lipgloss.NewStyle().Italic(true).Foreground(colorMuted)
)

// ProgressBar renders a fraction in [0, 1] as a bar of width cells, green
// when most of the ideal value survives drag and red when little does.
func ProgressBar(fraction float64, width int) string {
	filled := min(max(int(fraction*float64(width)), 0), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	color := colorDrag
	switch {
	case fraction > 0.8:
		color = colorGood
	case fraction > 0.4:
		color = colorWarn
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}
