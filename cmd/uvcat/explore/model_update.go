package explore

import (
	"fmt"
	"strconv"

	"uvcat/internal/config"
	"uvcat/internal/logging"
	"uvcat/internal/spectrum"
	"uvcat/internal/store"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// MESSAGES
// =============================================================================

type computedMsg struct {
	seq    int
	series []*spectrum.Series
	err    error
}

type savedMsg struct {
	id  string
	err error
}

type configReloadedMsg struct {
	cfg *config.Config
}

// =============================================================================
// COMMANDS
// =============================================================================

// computeCmd samples the active laws at the current temperature.
// Presentation scaling (normalize + anchor) happens here so View only
// draws. Each command is stamped with a fresh sequence number so a
// superseded result (temperature step, law or normalization toggle)
// can never land over a newer one.
func (m *Model) computeCmd() tea.Cmd {
	m.computeSeq++
	seq := m.computeSeq
	temp := m.temperature
	laws := m.laws()
	grid := m.grid
	anchorNm := m.cfg.AnchorNm
	normalize := m.normalized

	return func() tea.Msg {
		var out []*spectrum.Series
		var planck *spectrum.Series

		for _, law := range laws {
			s, err := spectrum.Compute(law, temp, grid)
			if err != nil {
				return computedMsg{seq: seq, err: err}
			}
			if law == spectrum.LawPlanck {
				planck = s
			}
			out = append(out, s)
		}

		if normalize && planck != nil {
			if _, err := planck.Normalize(); err != nil {
				return computedMsg{seq: seq, err: err}
			}
			for _, s := range out {
				if s == planck {
					continue
				}
				if err := s.AnchorTo(planck, anchorNm); err != nil {
					return computedMsg{seq: seq, err: err}
				}
			}
		}

		return computedMsg{seq: seq, series: out}
	}
}

// saveCmd persists the current curves to the run store. The store is
// opened by the update loop before the command is built, so the
// command goroutine never touches model fields.
func (m *Model) saveCmd() tea.Cmd {
	series := m.series
	temp := m.temperature
	cfg := m.cfg
	rs := m.runs

	return func() tea.Msg {
		if len(series) == 0 {
			return savedMsg{err: fmt.Errorf("nothing computed yet")}
		}

		id, err := rs.SaveRun(&store.Run{
			Temperature: temp,
			MinNm:       cfg.Grid.MinNm,
			MaxNm:       cfg.Grid.MaxNm,
			Samples:     cfg.Grid.Samples,
			Note:        "saved from explorer",
			Series:      series,
		})
		return savedMsg{id: id, err: err}
	}
}

// waitForReload blocks on the watcher channel and converts deliveries
// into messages; Update re-arms it after each one.
func waitForReload(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-w.Reloads()
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.lessonView.Width = msg.Width - 4
		m.lessonView.Height = msg.Height - 6
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case computedMsg:
		// Drop results from a superseded computation.
		if msg.seq != m.computeSeq {
			return m, nil
		}
		m.computing = false
		if msg.err != nil {
			m.err = msg.err
			m.status = "compute failed"
			return m, nil
		}
		m.err = nil
		m.series = msg.series
		m.status = ""
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = "save failed"
		} else {
			m.status = fmt.Sprintf("saved run %s", msg.id)
		}
		return m, nil

	case configReloadedMsg:
		logging.Explore("config reloaded: T=%gK", msg.cfg.Temperature)
		m.cfg = msg.cfg
		if grid, err := spectrum.Linspace(msg.cfg.Grid.MinNm, msg.cfg.Grid.MaxNm, msg.cfg.Grid.Samples); err == nil {
			m.grid = grid
		}
		m.temperature = msg.cfg.Temperature
		m.computing = true
		m.status = "config reloaded"
		cmds := []tea.Cmd{m.computeCmd()}
		if m.watcher != nil {
			cmds = append(cmds, waitForReload(m.watcher))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes key presses by mode.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Temperature entry mode captures everything except esc/enter.
	if m.enteringTemp {
		switch msg.String() {
		case "esc":
			m.enteringTemp = false
			m.tempInput.Blur()
			return m, nil
		case "enter":
			m.enteringTemp = false
			m.tempInput.Blur()
			return m, m.applyTempInput()
		default:
			var cmd tea.Cmd
			m.tempInput, cmd = m.tempInput.Update(msg)
			return m, cmd
		}
	}

	// Lesson overlay
	if m.showingLesson {
		switch msg.String() {
		case "esc", "l", "q":
			m.showingLesson = false
			return m, nil
		case "tab":
			m.lessonIdx = (m.lessonIdx + 1) % len(m.lessons)
			m.setLessonContent()
			return m, nil
		default:
			var cmd tea.Cmd
			m.lessonView, cmd = m.lessonView.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.Close()
		return m, tea.Quit

	case "+", "=":
		return m, m.setTemperature(m.temperature + tempStep)

	case "-", "_":
		return m, m.setTemperature(m.temperature - tempStep)

	case "t":
		m.enteringTemp = true
		m.tempInput.SetValue("")
		m.tempInput.Focus()
		return m, nil

	case "r":
		m.showClassical = !m.showClassical
		m.computing = true
		return m, m.computeCmd()

	case "w":
		m.showWien = !m.showWien
		m.computing = true
		return m, m.computeCmd()

	case "v":
		m.showBand = !m.showBand
		return m, nil

	case "n":
		m.normalized = !m.normalized
		m.computing = true
		return m, m.computeCmd()

	case "s":
		if m.runs == nil {
			rs, err := store.Open(store.DefaultPath(m.workspace))
			if err != nil {
				m.err = err
				m.status = "save failed"
				return m, nil
			}
			m.runs = rs
		}
		return m, m.saveCmd()

	case "l":
		m.showingLesson = true
		m.setLessonContent()
		return m, nil
	}

	return m, nil
}

// setTemperature clamps and recomputes.
func (m *Model) setTemperature(tempK float64) tea.Cmd {
	if tempK < tempMin {
		tempK = tempMin
	}
	if tempK > tempMax {
		tempK = tempMax
	}
	if tempK == m.temperature {
		return nil
	}
	m.temperature = tempK
	m.computing = true
	logging.ExploreDebug("temperature set to %gK", tempK)
	return m.computeCmd()
}

// applyTempInput parses the text entry.
func (m *Model) applyTempInput() tea.Cmd {
	v, err := strconv.ParseFloat(m.tempInput.Value(), 64)
	if err != nil {
		m.status = fmt.Sprintf("invalid temperature %q", m.tempInput.Value())
		return nil
	}
	return m.setTemperature(v)
}

// setLessonContent renders the current lesson into the viewport.
func (m *Model) setLessonContent() {
	width := m.lessonView.Width
	if width <= 0 {
		width = 76
	}
	out, err := m.lessons[m.lessonIdx].Render(width)
	if err != nil {
		out = m.lessons[m.lessonIdx].Body // fall back to raw markdown
	}
	m.lessonView.SetContent(out)
	m.lessonView.GotoTop()
}
