// Package ui provides the visual styling and terminal chart rendering
// for the uvcat CLI, with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f6f5f4")
	LightForeground = lipgloss.Color("#1c1530")
	LightPrimary    = lipgloss.Color("#5e35b1") // Deep violet
	LightAccent     = lipgloss.Color("#7c4dff")
	LightMuted      = lipgloss.Color("#9e9aa7")
	LightBorder     = lipgloss.Color("#d8d4e0")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#16121f")
	DarkForeground = lipgloss.Color("#f2f0f5")
	DarkPrimary    = lipgloss.Color("#b388ff") // Violet (lifted for dark bg)
	DarkAccent     = lipgloss.Color("#7c4dff")
	DarkMuted      = lipgloss.Color("#6f6a7d")
	DarkBorder     = lipgloss.Color("#3a3448")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935") // Red
	Success     = lipgloss.Color("#66bb6a") // Green
	Warning     = lipgloss.Color("#ffc107") // Yellow
	Info        = lipgloss.Color("#29b6f6") // Blue

	// Curve Colors
	CurvePlanck    = lipgloss.Color("#ffb300") // Amber - the real curve
	CurveClassical = lipgloss.Color("#e53935") // Red - the diverging one
	CurveWien      = lipgloss.Color("#26a69a") // Teal
	CurveExtra     = lipgloss.Color("#ec407a") // Pink - batch overlays
	BandVisible    = lipgloss.Color("#5c6bc0") // Indigo - visible band shading
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// ThemeByName resolves a config theme name ("light", "dark", "auto").
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme auto-detects based on terminal hints or returns light mode
func DetectTheme() Theme {
	// COLORFGBG format is usually "foreground;background"; ANSI indexes
	// 0-6 and 8 are dark backgrounds.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("UVCAT_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Chart parts
	Axis       lipgloss.Style
	Band       lipgloss.Style
	LegendKey  lipgloss.Style
	StatusLine lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Axis: lipgloss.NewStyle().
			Foreground(theme.Border),

		Band: lipgloss.NewStyle().
			Foreground(BandVisible).
			Faint(true),

		LegendKey: lipgloss.NewStyle().
			Bold(true),

		StatusLine: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the auto-detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Muted.Render(strings.Repeat("─", width))
}
