package theme

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds prebuilt lipgloss styles for a theme. Widgets render through
// these rather than constructing styles per frame.
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Accent      lipgloss.Style
	Border      lipgloss.Style
	BorderFocus lipgloss.Style

	StatusOK      lipgloss.Style
	StatusWarn    lipgloss.Style
	StatusError   lipgloss.Style
	StatusUnknown lipgloss.Style

	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style

	SearchHighlight lipgloss.Style
	HelpKey         lipgloss.Style
	HelpDesc        lipgloss.Style
}

// NewStyles builds the style set for t.
func NewStyles(t Theme) Styles {
	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return Styles{
		Title:       fg(t.Title).Bold(true),
		Dim:         fg(t.Dim),
		Accent:      fg(t.Accent),
		Border:      fg(t.Border),
		BorderFocus: fg(t.BorderFocus),

		StatusOK:      fg(t.StatusOK),
		StatusWarn:    fg(t.StatusWarn),
		StatusError:   fg(t.StatusError),
		StatusUnknown: fg(t.StatusUnknown),

		PriorityHigh:   fg(t.PriorityHigh).Bold(true),
		PriorityMedium: fg(t.PriorityMedium),
		PriorityLow:    fg(t.PriorityLow),

		SearchHighlight: fg(t.SearchHighlight).Reverse(true),
		HelpKey:         fg(t.HelpKey).Bold(true),
		HelpDesc:        fg(t.HelpDesc),
	}
}

// StatusStyle picks the style for a health status string.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "ok", "healthy", "running", "connected":
		return s.StatusOK
	case "warn", "warning", "degraded", "reconnecting":
		return s.StatusWarn
	case "error", "critical", "failed", "disconnected":
		return s.StatusError
	default:
		return s.StatusUnknown
	}
}

// GaugeColors picks filled and empty hex colors for a gauge at the given
// fill ratio. Thresholds: >=0.9 critical, >=0.7 warning.
func GaugeColors(ratio float64, t Theme) (filled, empty string) {
	empty = t.GaugeEmpty
	switch {
	case ratio >= 0.9:
		filled = t.GaugeCrit
	case ratio >= 0.7:
		filled = t.GaugeWarn
	default:
		filled = t.GaugeFilled
	}
	return filled, empty
}

// DetectProfile reports the terminal color profile so callers can decide
// whether hex colors will survive or be downsampled.
func DetectProfile() termenv.Profile {
	return termenv.ColorProfile()
}

// Adapt downgrades a theme's palette to what the profile can represent:
// hex colors stay on TrueColor terminals, become the nearest indexed color
// on ANSI256/ANSI, and are stripped on Ascii. The raw escape helpers in
// pkg/components consume hex only, so widgets keep working off the adapted
// strings through lipgloss.
func Adapt(t Theme, p termenv.Profile) Theme {
	if p == termenv.TrueColor {
		return t
	}
	for _, c := range []*string{
		&t.Background, &t.Foreground, &t.Dim, &t.Accent,
		&t.Border, &t.BorderFocus, &t.Title,
		&t.StatusOK, &t.StatusWarn, &t.StatusError, &t.StatusUnknown,
		&t.GaugeFilled, &t.GaugeEmpty, &t.GaugeWarn, &t.GaugeCrit,
		&t.SparkLine, &t.SparkDim,
		&t.PriorityHigh, &t.PriorityMedium, &t.PriorityLow,
		&t.SearchHighlight, &t.HelpKey, &t.HelpDesc,
	} {
		*c = downsample(*c, p)
	}
	return t
}

// downsample converts one #RRGGBB color for the profile. Indexed colors
// render as their decimal index, which lipgloss accepts directly.
func downsample(hex string, p termenv.Profile) string {
	if hex == "" {
		return ""
	}
	switch c := p.Convert(termenv.RGBColor(hex)).(type) {
	case termenv.ANSI256Color:
		return strconv.Itoa(int(c))
	case termenv.ANSIColor:
		return strconv.Itoa(int(c))
	default:
		// Ascii: no color at all.
		return ""
	}
}
