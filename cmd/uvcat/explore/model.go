// Package explore provides the interactive TUI for uvcat. The
// functionality is split across files in the usual way:
//   - model.go: Types, construction, Init (this file)
//   - model_update.go: Update loop, key handling, async commands
//   - view.go: Rendering functions
package explore

import (
	"context"

	"uvcat/cmd/uvcat/ui"
	"uvcat/internal/config"
	"uvcat/internal/lesson"
	"uvcat/internal/logging"
	"uvcat/internal/spectrum"
	"uvcat/internal/store"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Temperature stepping bounds for the +/- keys.
const (
	tempStep = 250.0
	tempMin  = 100.0
	tempMax  = 50000.0
)

// Model is the main model for the interactive explorer.
type Model struct {
	cfg       *config.Config
	workspace string
	styles    ui.Styles

	// Physics state
	temperature float64
	grid        []float64
	series      []*spectrum.Series // presentation-scaled, ready to chart
	computeSeq  int                // stamps in-flight computations

	// Display toggles
	showClassical bool
	showWien      bool
	showBand      bool
	normalized    bool

	// UI components
	spinner    spinner.Model
	tempInput  textinput.Model
	lessonView viewport.Model

	// Modes
	computing     bool
	enteringTemp  bool
	showingLesson bool
	lessonIdx     int
	lessons       []lesson.Lesson

	// Infrastructure
	runs    *store.RunStore
	watcher *config.Watcher
	cancel  context.CancelFunc

	width  int
	height int
	status string
	err    error
}

// New creates the explorer model for a workspace.
func New(workspace string, cfg *config.Config) (*Model, error) {
	grid, err := spectrum.Linspace(cfg.Grid.MinNm, cfg.Grid.MaxNm, cfg.Grid.Samples)
	if err != nil {
		return nil, err
	}

	lessons, err := lesson.All()
	if err != nil {
		return nil, err
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Info

	ti := textinput.New()
	ti.Placeholder = "temperature in K"
	ti.CharLimit = 7
	ti.Width = 20

	m := &Model{
		cfg:           cfg,
		workspace:     workspace,
		styles:        styles,
		temperature:   cfg.Temperature,
		grid:          grid,
		showClassical: true,
		showBand:      true,
		normalized:    true,
		spinner:       sp,
		tempInput:     ti,
		lessons:       lessons,
		status:        "computing...",
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	// Config hot reload is best-effort; the explorer works without it.
	if w, err := config.NewWatcher(workspace); err == nil {
		if err := w.Start(ctx); err == nil {
			m.watcher = w
		}
	} else {
		logging.Get(logging.CategoryExplore).Warn("config watcher unavailable: %v", err)
	}

	logging.Explore("explorer started: T=%gK, %d samples", m.temperature, len(grid))
	return m, nil
}

// Init starts the spinner, the first computation, and the reload pump.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.computeCmd()}
	if m.watcher != nil {
		cmds = append(cmds, waitForReload(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Close releases the explorer's resources (watcher, store, logs).
func (m *Model) Close() {
	m.cancel()
	if m.watcher != nil {
		m.watcher.Stop()
	}
	if m.runs != nil {
		m.runs.Close()
	}
	logging.Explore("explorer closed")
}

// laws returns the set of laws currently displayed.
func (m *Model) laws() []spectrum.Law {
	laws := []spectrum.Law{spectrum.LawPlanck}
	if m.showClassical {
		laws = append(laws, spectrum.LawRayleighJeans)
	}
	if m.showWien {
		laws = append(laws, spectrum.LawWien)
	}
	return laws
}
