package explore

import (
	"strings"
	"testing"

	"uvcat/internal/config"
	"uvcat/internal/spectrum"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Grid.Samples = 60 // keep recomputes cheap
	m, err := New(t.TempDir(), cfg)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewDefaults(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, 5000.0, m.temperature)
	assert.True(t, m.showClassical)
	assert.False(t, m.showWien)
	assert.True(t, m.normalized)
	assert.Len(t, m.laws(), 2)
}

func TestTemperatureStepping(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(keyMsg("+"))
	assert.Equal(t, 5250.0, m.temperature)
	assert.NotNil(t, cmd, "stepping should trigger a recompute")
	assert.True(t, m.computing)

	_, _ = m.Update(keyMsg("-"))
	assert.Equal(t, 5000.0, m.temperature)
}

func TestTemperatureClamped(t *testing.T) {
	m := newTestModel(t)

	cmd := m.setTemperature(1.0)
	assert.Equal(t, tempMin, m.temperature)
	assert.NotNil(t, cmd)

	cmd = m.setTemperature(1e9)
	assert.Equal(t, tempMax, m.temperature)
	assert.NotNil(t, cmd)

	// No recompute when the clamp lands on the current value.
	assert.Nil(t, m.setTemperature(2e9))
}

func TestLawToggles(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(keyMsg("r"))
	assert.False(t, m.showClassical)
	assert.NotNil(t, cmd)

	_, cmd = m.Update(keyMsg("w"))
	assert.True(t, m.showWien)
	assert.NotNil(t, cmd)
	assert.Len(t, m.laws(), 2) // planck + wien

	// The visible band is a pure display toggle.
	_, cmd = m.Update(keyMsg("v"))
	assert.False(t, m.showBand)
	assert.Nil(t, cmd)
}

func TestComputeCmdProducesSeries(t *testing.T) {
	m := newTestModel(t)

	msg := m.computeCmd()()
	computed, ok := msg.(computedMsg)
	require.True(t, ok)
	require.NoError(t, computed.err)
	require.Len(t, computed.series, 2)

	// Normalized Planck peaks at 1; the anchored classical curve blows
	// past it toward short wavelengths.
	planck := computed.series[0]
	assert.Equal(t, spectrum.LawPlanck, planck.Law)
	_, peakVal, err := planck.Peak()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, peakVal, 1e-12)

	classical := computed.series[1]
	assert.Greater(t, classical.Values[0], 10.0)
}

func TestComputedMsgApplied(t *testing.T) {
	m := newTestModel(t)
	m.computing = true

	msg := m.computeCmd()().(computedMsg)
	_, _ = m.Update(msg)

	assert.False(t, m.computing)
	assert.Len(t, m.series, 2)
	assert.NoError(t, m.err)
}

func TestStaleComputedMsgDropped(t *testing.T) {
	m := newTestModel(t)
	m.computing = true

	// A result already in flight when the law set changes at the same
	// temperature carries an old stamp and must not land.
	stale := m.computeCmd()()
	_, fresh := m.Update(keyMsg("r"))

	_, _ = m.Update(stale)
	assert.True(t, m.computing, "a superseded computation must not land")
	assert.Empty(t, m.series)

	_, _ = m.Update(fresh())
	assert.False(t, m.computing)
	require.Len(t, m.series, 1)
	assert.Equal(t, spectrum.LawPlanck, m.series[0].Law)
}

func TestTemperatureEntry(t *testing.T) {
	m := newTestModel(t)

	_, _ = m.Update(keyMsg("t"))
	require.True(t, m.enteringTemp)

	for _, r := range "6200" {
		_, _ = m.Update(keyMsg(string(r)))
	}
	_, cmd := m.Update(keyMsg("enter"))

	assert.False(t, m.enteringTemp)
	assert.Equal(t, 6200.0, m.temperature)
	assert.NotNil(t, cmd)
}

func TestTemperatureEntryRejectsGarbage(t *testing.T) {
	m := newTestModel(t)

	_, _ = m.Update(keyMsg("t"))
	for _, r := range "hot" {
		_, _ = m.Update(keyMsg(string(r)))
	}
	_, cmd := m.Update(keyMsg("enter"))

	assert.Nil(t, cmd)
	assert.Equal(t, 5000.0, m.temperature)
	assert.Contains(t, m.status, "invalid temperature")
}

func TestTemperatureEntryEscape(t *testing.T) {
	m := newTestModel(t)

	_, _ = m.Update(keyMsg("t"))
	_, _ = m.Update(keyMsg("esc"))

	assert.False(t, m.enteringTemp)
	assert.Equal(t, 5000.0, m.temperature)
}

func TestLessonOverlay(t *testing.T) {
	m := newTestModel(t)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	_, _ = m.Update(keyMsg("l"))
	require.True(t, m.showingLesson)
	assert.Equal(t, 0, m.lessonIdx)

	_, _ = m.Update(keyMsg("tab"))
	assert.Equal(t, 1, m.lessonIdx)

	_, _ = m.Update(keyMsg("esc"))
	assert.False(t, m.showingLesson)
}

func TestSaveWithoutSeries(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(keyMsg("s"))
	require.NotNil(t, cmd)

	saved, ok := cmd().(savedMsg)
	require.True(t, ok)
	assert.Error(t, saved.err)
}

func TestSaveRoundTrip(t *testing.T) {
	m := newTestModel(t)

	computed := m.computeCmd()().(computedMsg)
	require.NoError(t, computed.err)
	m.series = computed.series

	_, cmd := m.Update(keyMsg("s"))
	require.NotNil(t, cmd)

	saved := cmd().(savedMsg)
	require.NoError(t, saved.err)
	assert.Len(t, saved.id, 8)

	run, err := m.runs.GetRun(saved.id)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, run.Temperature)
	assert.Len(t, run.Series, 2)
}

func TestSaveOpensStoreOnUpdateLoopOnce(t *testing.T) {
	// The update loop owns the store handle: it opens before building
	// the command, so concurrent commands never race on the field and
	// repeated presses reuse one connection.
	m := newTestModel(t)

	computed := m.computeCmd()().(computedMsg)
	require.NoError(t, computed.err)
	m.series = computed.series

	_, cmd1 := m.Update(keyMsg("s"))
	require.NotNil(t, m.runs, "store must be opened before the command runs")
	first := m.runs

	_, cmd2 := m.Update(keyMsg("s"))
	assert.Same(t, first, m.runs)

	// Both in-flight saves use the handle they captured.
	require.IsType(t, savedMsg{}, cmd1())
	require.IsType(t, savedMsg{}, cmd2())
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	computed := m.computeCmd()().(computedMsg)
	require.NoError(t, computed.err)
	m.series = computed.series
	m.computing = false

	out := m.View()
	assert.Contains(t, out, "5000 K")
	assert.Contains(t, out, "Planck")
	assert.Contains(t, out, "peak")
	assert.Contains(t, out, "q quit")
}

func TestViewLessonOverlay(t *testing.T) {
	m := newTestModel(t)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	_, _ = m.Update(keyMsg("l"))

	out := m.View()
	assert.True(t, strings.Contains(out, "Lesson 1/4"), "overlay should show lesson position")
}

func TestConfigReload(t *testing.T) {
	m := newTestModel(t)

	cfg := config.DefaultConfig()
	cfg.Temperature = 3500
	cfg.Grid.Samples = 80

	_, cmd := m.Update(configReloadedMsg{cfg: cfg})
	assert.Equal(t, 3500.0, m.temperature)
	assert.Len(t, m.grid, 80)
	assert.NotNil(t, cmd)
}
