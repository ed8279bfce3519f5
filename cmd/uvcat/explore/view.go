package explore

import (
	"fmt"
	"strings"

	"uvcat/cmd/uvcat/ui"
	"uvcat/internal/physics"
	"uvcat/internal/spectrum"
)

// View renders the explorer.
func (m *Model) View() string {
	if m.showingLesson {
		return m.lessonOverlay()
	}

	var sb strings.Builder

	title := fmt.Sprintf("uvcat — blackbody explorer @ %.0f K", m.temperature)
	sb.WriteString(m.styles.Title.Render(title))
	sb.WriteString("\n")

	if m.enteringTemp {
		sb.WriteString(m.styles.Info.Render("New temperature: "))
		sb.WriteString(m.tempInput.View())
		sb.WriteString("\n\n")
	}

	if m.computing {
		sb.WriteString(m.spinner.View())
		sb.WriteString(m.styles.Muted.Render(" computing..."))
		sb.WriteString("\n")
	}

	if m.err != nil {
		sb.WriteString(m.styles.Error.Render("✗ " + m.err.Error()))
		sb.WriteString("\n")
	}

	if chart := m.renderChart(); chart != "" {
		sb.WriteString(chart)
	}

	sb.WriteString(m.statsLine())
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(m.styles.Success.Render(m.status))
		sb.WriteString("\n")
	}

	sb.WriteString(m.helpLine())
	return sb.String()
}

// renderChart draws the current series.
func (m *Model) renderChart() string {
	if len(m.series) == 0 {
		return ""
	}

	chart := &ui.Chart{
		Width:           m.chartWidth(),
		Height:          m.cfg.Chart.Height,
		Styles:          m.styles,
		WavelengthsNm:   m.grid,
		ShowVisibleBand: m.showBand,
	}
	if m.normalized {
		// Headroom above the normalized Planck peak so the classical
		// blow-up visibly exits the frame.
		chart.YMax = 1.2
	}

	for i, s := range m.series {
		chart.Series = append(chart.Series, ui.NewChartSeries(s.Law.Label(), s.Values, i))
	}

	out, err := chart.Render()
	if err != nil {
		return m.styles.Error.Render("chart: "+err.Error()) + "\n"
	}
	return out
}

func (m *Model) chartWidth() int {
	w := m.cfg.Chart.Width
	if m.width > 20 && m.width-12 < w {
		w = m.width - 12
	}
	if w < 20 {
		w = 20
	}
	return w
}

// statsLine summarizes the physics at the current temperature.
func (m *Model) statsLine() string {
	peak, err := physics.PeakWavelength(m.temperature)
	if err != nil {
		return ""
	}
	exitance, err := physics.RadiantExitance(m.temperature)
	if err != nil {
		return ""
	}

	parts := []string{
		fmt.Sprintf("peak %.0f nm", peak/spectrum.MetersPerNm),
		fmt.Sprintf("M = %.3g W/m²", exitance),
	}

	if report := m.divergence(); report != nil && report.Found {
		parts = append(parts, fmt.Sprintf("catastrophe ≥%gx at %.0f nm", report.Threshold, report.CatastropheNm))
	}

	return m.styles.StatusLine.Render(strings.Join(parts, "  │  "))
}

// divergence compares the displayed Planck and classical curves, if
// both are present.
func (m *Model) divergence() *spectrum.DivergenceReport {
	var planck, classical *spectrum.Series
	for _, s := range m.series {
		switch s.Law {
		case spectrum.LawPlanck:
			planck = s
		case spectrum.LawRayleighJeans:
			classical = s
		}
	}
	if planck == nil || classical == nil {
		return nil
	}
	report, err := spectrum.Diverge(planck, classical, m.cfg.DivergenceThreshold)
	if err != nil {
		return nil
	}
	return report
}

// helpLine renders the key legend.
func (m *Model) helpLine() string {
	keys := []string{
		"+/- temp", "t enter temp", "r classical", "w wien",
		"v band", "n normalize", "s save", "l lesson", "q quit",
	}
	return m.styles.Muted.Render(strings.Join(keys, " · "))
}

// lessonOverlay renders the lesson reading mode.
func (m *Model) lessonOverlay() string {
	var sb strings.Builder

	l := m.lessons[m.lessonIdx]
	header := fmt.Sprintf("Lesson %d/%d: %s", m.lessonIdx+1, len(m.lessons), l.Title)
	sb.WriteString(m.styles.Title.Render(header))
	sb.WriteString("\n")
	sb.WriteString(m.lessonView.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("tab next lesson · ↑/↓ scroll · esc back"))
	return sb.String()
}
