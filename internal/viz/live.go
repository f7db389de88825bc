package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/metropolis"
)

const (
	frameRate       = 30
	historyCapacity = 120
	averageWindow   = 4
	temperatureStep = 0.1

	// Lattices wider than this are drawn on a Braille canvas.
	blockColumns = 48
)

type TickMsg time.Time

type Options struct {
	Temperature    float64
	Coupling       float64
	Field          float64
	SweepsPerFrame int
	Theme          string
}

// Model drives one chain and renders it.
type Model struct {
	chain          *metropolis.Chain[int8, float64]
	temp           float64
	coupling       float64
	field          float64
	sweepsPerFrame int
	history        *RollingAverage
	canvas         *Canvas
	theme          int
	running        bool
	showHelp       bool
}

func NewModel(chain *metropolis.Chain[int8, float64], opts Options) Model {
	rows, columns := chain.Lattice().Shape()
	return Model{
		chain:          chain,
		temp:           math.Max(opts.Temperature, 0),
		coupling:       opts.Coupling,
		field:          opts.Field,
		sweepsPerFrame: max(opts.SweepsPerFrame, 1),
		history:        NewRollingAverage(historyCapacity, averageWindow),
		canvas:         CanvasFor(rows, columns),
		theme:          ThemeIndex(opts.Theme),
		running:        true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Temperature() float64 { return m.temp }

// roundTenth keeps repeated ±0.1 steps on the one-decimal grid.
func roundTenth(v float64) float64 { return math.Round(v*10) / 10 }

// Update handles input events and steps the chain on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.temp = roundTenth(m.temp + temperatureStep)
		case "down", "j":
			if m.temp > 0 {
				m.temp = math.Max(roundTenth(m.temp-temperatureStep), 0)
			}
		case " ":
			m.reset(lattice.AllUp[int8]())
		case "backspace":
			m.reset(lattice.AllDown[int8]())
		case "r":
			m.reset(lattice.Thermal[int8](m.chain.Source()))
		case "p":
			m.running = !m.running
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) reset(gen lattice.Generator[int8]) {
	m.chain.Reset(gen)
	m.history.Reset()
}

func (m *Model) step() {
	for i := 0; i < m.sweepsPerFrame; i++ {
		m.chain.Sweep(m.temp, m.coupling, m.field)
		m.history.Add(m.chain.Magnetization())
	}
}

func (m Model) renderLattice(theme Theme) string {
	l := m.chain.Lattice()
	if l.Columns() > blockColumns {
		DrawLattice(m.canvas, l)
		return lipgloss.NewStyle().Foreground(theme.Up).Render(strings.TrimRight(m.canvas.String(), "\n"))
	}

	up := lipgloss.NewStyle().Foreground(theme.Up)
	down := lipgloss.NewStyle().Foreground(theme.Down)

	var b strings.Builder
	for i := 0; i < l.Rows(); i++ {
		row := l.Row(i)
		for j := 0; j < len(row); {
			run := 1
			for j+run < len(row) && row[j+run] == row[j] {
				run++
			}
			cells := strings.Repeat("██", run)
			if row[j] > 0 {
				b.WriteString(up.Render(cells))
			} else {
				b.WriteString(down.Render(cells))
			}
			j += run
		}
		if i < l.Rows()-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) View() string {
	theme := Themes[m.theme]
	rows, columns := m.chain.Lattice().Shape()

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(theme.Accent).Render(fmt.Sprintf("ISING %dx%d", rows, columns)) + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	chart := asciigraph.Plot(m.history.History(),
		asciigraph.Height(6), asciigraph.Width(40),
		asciigraph.LowerBound(-1), asciigraph.UpperBound(1),
		asciigraph.Caption("magnetisation"))
	s.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(chart) + "\n\n")

	mag := m.chain.Magnetization()
	line := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	line("Temperature", fmt.Sprintf("%.1f", m.temp))
	line("Coupling J", fmt.Sprintf("%.2f", m.coupling))
	line("Field h", fmt.Sprintf("%.2f", m.field))
	line("Sweeps", fmt.Sprintf("%d", m.chain.Sweeps()))
	line("Magnetisation", fmt.Sprintf("%+.3f", mag))
	line("|m|", Bar(math.Abs(mag), 20))
	line("Energy / N", fmt.Sprintf("%.3f", m.chain.EnergyDensity()))
	line("Theme", theme.Name)

	s.WriteString(helpStyle.Render(Separator(24) + "\n↑↓:Temp SP:Up BS:Down R:Random\nP:Pause T:Theme ?:Help Q:Quit"))

	latticeView := canvasStyle.Render(m.renderLattice(theme))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, latticeView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Up/K      - Temperature +0.1        ║
║  Down/J    - Temperature -0.1        ║
║  Space     - All spins up            ║
║  Backspace - All spins down          ║
║  R         - Random spins            ║
║  P         - Pause/Resume            ║
║  T         - Cycle themes            ║
║  ?         - Toggle this help        ║
║  Q         - Quit                    ║
╚══════════════════════════════════════╝`
