package ui

import (
	"math/rand"
	"strings"
	"testing"

	"innermotion/internal/engine"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatch(t *testing.T, total, batch int) WatchModel {
	t.Helper()
	src := rand.New(rand.NewSource(4))
	p, err := engine.Preset(engine.VariantConsciousness, src)
	require.NoError(t, err)
	sim, err := engine.NewSimulation(p, src)
	require.NoError(t, err)
	return NewWatchModel(sim, total, batch)
}

func tickN(m WatchModel, n int) WatchModel {
	for i := 0; i < n; i++ {
		next, _ := m.Update(tickMsg{id: m.chain})
		m = next.(WatchModel)
	}
	return m
}

func TestWatchModelRunsToBudget(t *testing.T) {
	m := newWatch(t, 1000, 100)
	assert.NotNil(t, m.Init())

	m = tickN(m, 5)
	assert.Equal(t, 500, m.Simulation().Steps())
	assert.False(t, m.Done())

	m = tickN(m, 10)
	assert.Equal(t, 1000, m.Simulation().Steps(), "never steps past the budget")
	assert.True(t, m.Done())

	_, cmd := m.Update(tickMsg{id: m.chain})
	assert.Nil(t, cmd, "no more ticks once done")
	assert.Contains(t, m.View(), "done")
}

func TestWatchModelDefaultBatch(t *testing.T) {
	m := newWatch(t, 50, 0)
	m = tickN(m, 1)
	assert.Equal(t, 1, m.Simulation().Steps())
}

func TestWatchModelPause(t *testing.T) {
	m := newWatch(t, 100, 10)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = next.(WatchModel)
	assert.Contains(t, m.View(), "paused")

	m = tickN(m, 3)
	assert.Zero(t, m.Simulation().Steps())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = next.(WatchModel)
	assert.NotNil(t, cmd, "resuming restarts the tick loop")
	m = tickN(m, 1)
	assert.Equal(t, 10, m.Simulation().Steps())
}

func TestWatchModelResumeKeepsOneTickChain(t *testing.T) {
	m := newWatch(t, 100, 10)
	stale := tickMsg{id: m.chain}

	// Pause and resume before the pending tick is delivered.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = next.(WatchModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = next.(WatchModel)
	require.NotNil(t, cmd)

	next, cmd = m.Update(stale)
	m = next.(WatchModel)
	assert.Nil(t, cmd, "a tick from the old chain schedules nothing")
	assert.Zero(t, m.Simulation().Steps(), "a tick from the old chain does not step")

	m = tickN(m, 1)
	assert.Equal(t, 10, m.Simulation().Steps())
}

func TestWatchModelQuit(t *testing.T) {
	m := newWatch(t, 100, 10)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(WatchModel).Aborted())
}

func TestWatchModelView(t *testing.T) {
	m := newWatch(t, 2000, 500)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(WatchModel)
	m = tickN(m, 4)

	view := m.View()
	for _, want := range []string{"consciousness / focused", "2000/2000", "self", "sync", "conscious"} {
		assert.True(t, strings.Contains(view, want), "view missing %q", want)
	}
}
