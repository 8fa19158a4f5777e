package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/casim/pkg/automaton"
)

const historyCapacity = 120

var (
	statsStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

type TickMsg time.Time

// Factory builds a fresh simulation; the live view calls it on start and on
// every reset.
type Factory func() (*automaton.Simulation[bool], error)

// Model is the Bubble Tea model of the live view.
type Model struct {
	factory Factory
	sim     *automaton.Simulation[bool]
	theme   Theme
	fps     int
	limit   int
	running bool
	history []float64
	err     error
}

// NewModel builds the first simulation from factory. Stepping stops at
// generation limit; 0 means no limit.
func NewModel(factory Factory, theme Theme, fps, limit int) (Model, error) {
	if fps <= 0 {
		fps = 10
	}
	m := Model{factory: factory, theme: theme, fps: fps, limit: limit, running: true}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			m.running = false
			m.step()
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		case "t":
			m.theme = NextTheme(m.theme)
		}
		return m, nil
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) reset() error {
	sim, err := m.factory()
	if err != nil {
		return err
	}
	m.sim = sim
	m.history = m.history[:0]
	m.record()
	return nil
}

func (m *Model) step() {
	if m.limit > 0 && m.sim.Generation() >= m.limit {
		m.running = false
		return
	}
	m.sim.Step()
	m.record()
}

func (m *Model) record() {
	pop := 0
	for _, c := range m.sim.Cells() {
		if c {
			pop++
		}
	}
	m.history = append(m.history, float64(pop))
	if len(m.history) > historyCapacity {
		m.history = m.history[len(m.history)-historyCapacity:]
	}
}

// Generation returns the generation currently displayed.
func (m Model) Generation() int { return m.sim.Generation() }

// Running reports whether the view advances on ticks.
func (m Model) Running() bool { return m.running }

func (m Model) View() string {
	grid := Framed(m.sim.Cells(), m.sim.Width(), m.theme)

	status := "running"
	if !m.running {
		status = "paused"
	}
	pop := 0.0
	if len(m.history) > 0 {
		pop = m.history[len(m.history)-1]
	}

	var stats strings.Builder
	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("generation", fmt.Sprintf("%d", m.sim.Generation()))
	row("population", fmt.Sprintf("%.0f", pop))
	row("grid", fmt.Sprintf("%dx%d", m.sim.Width(), m.sim.Height()))
	row("theme", m.theme.Name)
	row("status", status)
	if len(m.history) > 1 {
		stats.WriteString("\n" + PopulationPlot(m.history, "population", 40, 6))
	}
	if m.err != nil {
		stats.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, statsStyle.Render(stats.String()))
	return body + "\n" + helpStyle.Render("space pause • n step • r reset • t theme • q quit")
}
