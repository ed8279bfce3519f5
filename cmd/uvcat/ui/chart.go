package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"uvcat/internal/physics"

	"github.com/charmbracelet/lipgloss"
)

// ChartSeries is one curve on a chart. Values must align with the
// chart's wavelength grid.
type ChartSeries struct {
	Label  string
	Values []float64
	Glyph  rune
	Color  lipgloss.Color
}

// curvePalette assigns glyphs/colors for series beyond the known laws.
var curvePalette = []struct {
	glyph rune
	color lipgloss.Color
}{
	{'*', CurveExtra},
	{'+', Info},
	{'x', Warning},
}

// NewChartSeries builds a ChartSeries with the house glyph and color
// for the given label. The Planck curve is always the solid amber one;
// the classical curve is the red dashed one that runs off the top.
func NewChartSeries(label string, values []float64, idx int) ChartSeries {
	cs := ChartSeries{Label: label, Values: values}
	switch label {
	case "Planck":
		cs.Glyph, cs.Color = '█', CurvePlanck
	case "Rayleigh-Jeans":
		cs.Glyph, cs.Color = '╍', CurveClassical
	case "Wien":
		cs.Glyph, cs.Color = '~', CurveWien
	default:
		p := curvePalette[idx%len(curvePalette)]
		cs.Glyph, cs.Color = p.glyph, p.color
	}
	return cs
}

// Chart renders sampled curves on a fixed-size canvas with axes, the
// shaded visible band, and a legend.
type Chart struct {
	Width  int // plot columns, excluding the y-axis gutter
	Height int // plot rows
	Styles Styles

	WavelengthsNm []float64
	Series        []ChartSeries

	// ShowVisibleBand shades 380-750 nm.
	ShowVisibleBand bool

	// YMax overrides the autoscaled y range (0 uses the series maximum).
	// With normalized curves, 1.2 leaves headroom above the peak so a
	// diverging curve exits through the top of the frame.
	YMax float64
}

const bandGlyph = '·'

// Render draws the chart.
func (c *Chart) Render() (string, error) {
	if c.Width < 10 || c.Height < 3 {
		return "", fmt.Errorf("chart too small: %dx%d", c.Width, c.Height)
	}
	if len(c.WavelengthsNm) < 2 {
		return "", fmt.Errorf("chart needs at least two samples")
	}
	for _, s := range c.Series {
		if len(s.Values) != len(c.WavelengthsNm) {
			return "", fmt.Errorf("series %q has %d values for %d wavelengths", s.Label, len(s.Values), len(c.WavelengthsNm))
		}
	}

	yMax := c.YMax
	if yMax <= 0 {
		for _, s := range c.Series {
			for _, v := range s.Values {
				if !math.IsInf(v, 0) && !math.IsNaN(v) && v > yMax {
					yMax = v
				}
			}
		}
		if yMax == 0 {
			yMax = 1
		}
	}

	type cell struct {
		glyph rune
		style lipgloss.Style
		set   bool
	}
	canvas := make([][]cell, c.Height)
	for r := range canvas {
		canvas[r] = make([]cell, c.Width)
	}

	n := len(c.WavelengthsNm)
	minNm := c.WavelengthsNm[0]
	maxNm := c.WavelengthsNm[n-1]

	// Shade the visible band first so curves draw over it.
	if c.ShowVisibleBand {
		for col := 0; col < c.Width; col++ {
			lo := minNm + (maxNm-minNm)*float64(col)/float64(c.Width)
			hi := minNm + (maxNm-minNm)*float64(col+1)/float64(c.Width)
			if hi < physics.VisibleMinNm || lo > physics.VisibleMaxNm {
				continue
			}
			for row := 0; row < c.Height; row++ {
				canvas[row][col] = cell{glyph: bandGlyph, style: c.Styles.Band, set: true}
			}
		}
	}

	// Plot each series; the max within a column's sample span keeps
	// narrow peaks visible at coarse widths.
	for _, s := range c.Series {
		style := lipgloss.NewStyle().Foreground(s.Color)
		for col := 0; col < c.Width; col++ {
			start := col * n / c.Width
			end := (col + 1) * n / c.Width
			if end <= start {
				end = start + 1
			}
			v := math.Inf(-1)
			for i := start; i < end && i < n; i++ {
				if s.Values[i] > v {
					v = s.Values[i]
				}
			}
			if math.IsInf(v, -1) || math.IsNaN(v) || v < 0 {
				continue
			}

			// Clamp before the float->int conversion: an anchored
			// classical curve can sit hundreds of orders of magnitude
			// above yMax, far past what int can hold.
			if v > yMax {
				v = yMax
			}
			row := int(v / yMax * float64(c.Height-1))
			if row >= c.Height {
				row = c.Height - 1
			}
			// Row 0 is the top of the canvas.
			canvas[c.Height-1-row][col] = cell{glyph: s.Glyph, style: style, set: true}
		}
	}

	// Assemble: y gutter + canvas, then x axis and labels.
	yTop := formatValue(yMax)
	yMid := formatValue(yMax / 2)
	gutter := len(yTop)
	if len(yMid) > gutter {
		gutter = len(yMid)
	}

	var sb strings.Builder
	for row := 0; row < c.Height; row++ {
		label := strings.Repeat(" ", gutter)
		switch row {
		case 0:
			label = pad(yTop, gutter)
		case c.Height / 2:
			label = pad(yMid, gutter)
		case c.Height - 1:
			label = pad("0", gutter)
		}
		sb.WriteString(c.Styles.Axis.Render(label + "┤"))
		for col := 0; col < c.Width; col++ {
			if canvas[row][col].set {
				sb.WriteString(canvas[row][col].style.Render(string(canvas[row][col].glyph)))
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	// X axis
	sb.WriteString(c.Styles.Axis.Render(strings.Repeat(" ", gutter) + "└" + strings.Repeat("─", c.Width)))
	sb.WriteString("\n")

	// X labels: min, mid, max in nm
	xMinLabel := formatValue(minNm)
	xMidLabel := formatValue((minNm + maxNm) / 2)
	xMaxLabel := formatValue(maxNm) + " nm"
	labelLine := strings.Repeat(" ", gutter+1) + xMinLabel
	midPos := gutter + 1 + c.Width/2 - len(xMidLabel)/2
	endPos := gutter + 1 + c.Width - len(xMaxLabel)
	labelLine = overlay(labelLine, xMidLabel, midPos)
	labelLine = overlay(labelLine, xMaxLabel, endPos)
	sb.WriteString(c.Styles.Muted.Render(labelLine))
	sb.WriteString("\n")

	// Legend
	var legend []string
	for _, s := range c.Series {
		key := lipgloss.NewStyle().Foreground(s.Color).Bold(true).Render(string(s.Glyph))
		legend = append(legend, key+" "+s.Label)
	}
	if c.ShowVisibleBand {
		legend = append(legend, c.Styles.Band.Render(string(bandGlyph))+" visible band")
	}
	sb.WriteString("  " + strings.Join(legend, "   "))
	sb.WriteString("\n")

	return sb.String(), nil
}

// formatValue renders an axis value compactly (3 significant digits).
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 3, 64)
}

// pad right-aligns s in width.
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// overlay writes s into line at pos, extending the line if needed.
func overlay(line, s string, pos int) string {
	if pos < 0 {
		pos = 0
	}
	runes := []rune(line)
	for len(runes) < pos+len([]rune(s)) {
		runes = append(runes, ' ')
	}
	copy(runes[pos:], []rune(s))
	return string(runes)
}
