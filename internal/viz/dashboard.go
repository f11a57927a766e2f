package viz

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/trajsim/internal/config"
	"github.com/san-kum/trajsim/internal/environment"
	"github.com/san-kum/trajsim/internal/trajectory"
)

type control int

const (
	ctrlPlanet control = iota
	ctrlSpeed
	ctrlAngle
	ctrlMass
	ctrlRadius
	ctrlDrag
	ctrlIdeal
	numControls
)

var controlNames = [numControls]string{"Planet", "Speed", "Angle", "Mass", "Radius", "Air Resistance", "Show Ideal"}

// runMsg delivers a finished computation. seq discards results that were
// overtaken by a later edit.
type runMsg struct {
	seq int
	run *trajectory.Run
	err error
}

// Dashboard is the interactive trajectory explorer.
type Dashboard struct {
	cfg    config.Config
	engine *trajectory.Engine
	run    *trajectory.Run
	err    error
	cursor control
	seq    int
	width  int
	height int
}

// NewDashboard starts from cfg clamped into the control ranges. The engine
// logs nowhere so fallback warnings cannot corrupt the screen.
func NewDashboard(cfg config.Config) Dashboard {
	cfg.Clamp()
	return Dashboard{
		cfg:    cfg,
		engine: trajectory.NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil))),
		width:  100,
		height: 40,
	}
}

func (m Dashboard) Init() tea.Cmd {
	return m.compute()
}

func (m Dashboard) compute() tea.Cmd {
	req := m.cfg.Request()
	seq := m.seq
	engine := m.engine
	return func() tea.Msg {
		run, err := engine.Simulate(req)
		return runMsg{seq: seq, run: run, err: err}
	}
}

func (m Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case runMsg:
		if msg.seq == m.seq {
			m.run, m.err = msg.run, msg.err
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Dashboard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.cursor = (m.cursor + numControls - 1) % numControls
		return m, nil
	case "down", "j":
		m.cursor = (m.cursor + 1) % numControls
		return m, nil
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "d":
		m.cfg.Drag = !m.cfg.Drag
	case "i":
		m.cfg.ShowIdeal = !m.cfg.ShowIdeal
		return m, nil
	case "p":
		m.cfg.Planet = nextPlanet(m.cfg.Planet, 1)
	case "r":
		m.cfg = *config.DefaultConfig()
	default:
		return m, nil
	}

	m.cfg.Clamp()
	m.seq++
	return m, m.compute()
}

func (m *Dashboard) adjust(dir int) {
	d := float64(dir)
	switch m.cursor {
	case ctrlPlanet:
		m.cfg.Planet = nextPlanet(m.cfg.Planet, dir)
	case ctrlSpeed:
		m.cfg.Speed += d
	case ctrlAngle:
		m.cfg.Angle += d
	case ctrlMass:
		m.cfg.Mass += 0.01 * d
	case ctrlRadius:
		m.cfg.Radius += 0.01 * d
	case ctrlDrag:
		m.cfg.Drag = !m.cfg.Drag
	case ctrlIdeal:
		m.cfg.ShowIdeal = !m.cfg.ShowIdeal
	}
}

func nextPlanet(current string, dir int) string {
	names := environment.Names()
	name := environment.Select(current).Name
	for i, n := range names {
		if n == name {
			return strings.ToLower(names[(i+dir+len(names))%len(names)])
		}
	}
	return strings.ToLower(names[0])
}

func (m Dashboard) View() string {
	var b strings.Builder
	b.WriteString(Title.Render("TRAJSIM  projectile motion"))
	b.WriteString("\n\n")

	controls := m.renderControls()
	var body string
	switch {
	case m.err != nil:
		body = Loss.Render("error: " + m.err.Error())
	case m.run == nil:
		body = Subtle.Render("computing...")
	default:
		body = RenderSummary(m.run)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, controls, "  ", body))
	b.WriteString("\n\n")

	if m.run != nil && m.err == nil {
		w := m.width - 12
		if w < 20 {
			w = 20
		}
		h := m.height - 24
		if h < 6 {
			h = 6
		}
		b.WriteString(Plot(m.run, w, h, m.cfg.ShowIdeal && m.run.DragEnabled))
		b.WriteString("\n\n")
	}

	b.WriteString(KeyHint.Render("↑↓ select  ←→ adjust  d drag  i ideal  p planet  r reset  q quit"))
	return b.String()
}

func (m Dashboard) renderControls() string {
	env := environment.Select(m.cfg.Planet)
	values := [numControls]string{
		env.Name,
		fmt.Sprintf("%.0f m/s", m.cfg.Speed),
		fmt.Sprintf("%.0f°", m.cfg.Angle),
		fmt.Sprintf("%.2f kg", m.cfg.Mass),
		fmt.Sprintf("%.2f m", m.cfg.Radius),
		onOff(m.cfg.Drag),
		onOff(m.cfg.ShowIdeal),
	}

	var lines []string
	for i := control(0); i < numControls; i++ {
		line := fmt.Sprintf("%-15s %s", controlNames[i], values[i])
		if i == m.cursor {
			lines = append(lines, Selected.Render("> "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}
	if m.cfg.Drag && !env.HasAtmosphere() {
		lines = append(lines, "", Subtle.Render("no atmosphere: drag has no effect"))
	}
	return Panel.Render(strings.Join(lines, "\n"))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// RunInteractive opens the dashboard full screen until the user quits.
func RunInteractive(cfg config.Config) error {
	p := tea.NewProgram(NewDashboard(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
