// Package ui provides the live terminal view of a running simulation.
package ui

import (
	"fmt"
	"strings"
	"time"

	"innermotion/internal/engine"
	"innermotion/internal/report"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultInterval is the delay between step batches.
const DefaultInterval = 30 * time.Millisecond

// sparkWindow is how many recent steps the sparklines cover.
const sparkWindow = 200

// tickMsg carries the id of the tick chain that scheduled it. Only the
// current chain advances the run.
type tickMsg struct {
	id int
}

// WatchModel steps a simulation in batches and renders its progress.
type WatchModel struct {
	sim      *engine.Simulation
	total    int
	batch    int
	interval time.Duration

	width    int
	progress progress.Model
	styles   report.Styles

	// chain identifies the live tick chain; resuming starts a new one.
	chain int

	last    engine.StepResult
	paused  bool
	done    bool
	aborted bool
}

// NewWatchModel creates a model that runs sim for total steps, batch steps
// per tick. batch <= 0 picks roughly 200 ticks for the whole run.
func NewWatchModel(sim *engine.Simulation, total, batch int) WatchModel {
	if batch <= 0 {
		batch = total / 200
		if batch < 1 {
			batch = 1
		}
	}
	return WatchModel{
		sim:      sim,
		total:    total,
		batch:    batch,
		interval: DefaultInterval,
		width:    80,
		progress: progress.New(progress.WithDefaultGradient()),
		styles:   report.DefaultStyles(),
	}
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return m.tick()
}

func (m WatchModel) tick() tea.Cmd {
	id := m.chain
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{id: id} })
}

// Update handles messages.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = !m.done
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused && !m.done {
				m.chain++
				return m, m.tick()
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 4
	case tickMsg:
		if msg.id != m.chain || m.done || m.paused {
			return m, nil
		}
		m.advance()
		if m.done {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

// advance runs one batch, stopping at the step budget.
func (m *WatchModel) advance() {
	for i := 0; i < m.batch && m.sim.Steps() < m.total; i++ {
		m.last = m.sim.Step()
	}
	if m.sim.Steps() >= m.total {
		m.done = true
	}
}

// Done reports whether the full step budget has run.
func (m WatchModel) Done() bool { return m.done }

// Aborted reports whether the user quit before the run finished.
func (m WatchModel) Aborted() bool { return m.aborted }

// Simulation returns the simulation being watched.
func (m WatchModel) Simulation() *engine.Simulation { return m.sim }

// View renders the dashboard.
func (m WatchModel) View() string {
	var sb strings.Builder
	p := m.sim.Engine().Params()

	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("innermotion · %s / %s", p.Variant, p.Environment)))
	sb.WriteString("\n\n")

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.sim.Steps()) / float64(m.total)
	}
	sb.WriteString(m.progress.ViewAs(ratio))
	sb.WriteString(fmt.Sprintf("  %d/%d\n\n", m.sim.Steps(), m.total))

	state := m.styles.Unconscious.Render("○ unconscious")
	if m.last.Conscious {
		state = m.styles.Conscious.Render("● conscious")
	}
	stim := string(m.last.Stimulus)
	if stim == "" {
		stim = "-"
	}
	metrics := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Box.Render(fmt.Sprintf("self  %.4f\nsync  %.4f", m.last.SelfStrength, m.last.SyncScore)),
		" ",
		m.styles.Box.Render(fmt.Sprintf("%s\nstimulus %s", state, stim)),
		" ",
		m.styles.Box.Render(fmt.Sprintf("rate       %.1f%%\nconscious  %s",
			m.sim.ConsciousnessRate()*100, report.StepLabel(m.sim.State().EmergedAt))),
	)
	sb.WriteString(metrics)
	sb.WriteString("\n\n")

	h := m.sim.History()
	if n := len(h.SelfStrength); n > sparkWindow {
		h.SelfStrength = h.SelfStrength[n-sparkWindow:]
		h.Sync = h.Sync[n-sparkWindow:]
	}
	sb.WriteString(report.History(h, m.width-6, m.styles))
	sb.WriteString("\n")

	if at, ok := m.sim.LanguageAcquiredAt(); ok {
		sb.WriteString(m.styles.Info.Render(fmt.Sprintf("language acquired at step %d", at)))
		sb.WriteString("\n")
	}
	if n := len(m.sim.MixedStates()); n > 0 {
		sb.WriteString(m.styles.Warning.Render(fmt.Sprintf("mixed states: %d", n)))
		sb.WriteString("\n")
	}

	switch {
	case m.done:
		sb.WriteString(m.styles.Muted.Render("done · [q] quit"))
	case m.paused:
		sb.WriteString(m.styles.Muted.Render("paused · [space] resume  [q] quit"))
	default:
		sb.WriteString(m.styles.Muted.Render("[space] pause  [q] quit"))
	}
	sb.WriteString("\n")
	return sb.String()
}
