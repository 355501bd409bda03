// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confidence bands used to colour extracted values.
const (
	HighConfidence = 90.0
	LowConfidence  = 60.0
)

// labelWidth aligns field names in the verify form.
const labelWidth = 28

// Palette names the colours the TUI draws with.
type Palette struct {
	Accent    lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Edge      lipgloss.Color
	Bar       lipgloss.Color

	// Confident, Unsure and Doubtful colour the three confidence bands.
	// Confident and Doubtful also mark saved records and failures.
	Confident lipgloss.Color
	Unsure    lipgloss.Color
	Doubtful  lipgloss.Color
}

// DefaultPalette returns the dark palette the TUI starts with.
func DefaultPalette() *Palette {
	return &Palette{
		Accent:    lipgloss.Color("#2563EB"),
		Highlight: lipgloss.Color("#06B6D4"),
		Text:      lipgloss.Color("#CDD6F4"),
		Dim:       lipgloss.Color("#6C7086"),
		Edge:      lipgloss.Color("#45475A"),
		Bar:       lipgloss.Color("#181825"),
		Confident: lipgloss.Color("#A6E3A1"),
		Unsure:    lipgloss.Color("#F9E2AF"),
		Doubtful:  lipgloss.Color("#F38BA8"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	palette *Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style

	// Error, Success and Warning double as the confidence band styles.
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// FieldLabel and FocusedLabel render field names in the verify form.
	FieldLabel   lipgloss.Style
	FocusedLabel lipgloss.Style
	InputField   lipgloss.Style

	StatusBar lipgloss.Style
}

// NewStyles derives styles from a palette. A nil palette uses the default.
func NewStyles(p *Palette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		palette:  p,
		Title:    fg(p.Accent).Bold(true),
		Subtitle: fg(p.Highlight).Bold(true),
		Normal:   fg(p.Text),
		Muted:    fg(p.Dim),
		Selected: fg(p.Text).Background(p.Accent).Bold(true),
		Help:     fg(p.Dim),

		Error:   fg(p.Doubtful),
		Success: fg(p.Confident),
		Warning: fg(p.Unsure),

		FieldLabel:   fg(p.Text).Width(labelWidth),
		FocusedLabel: fg(p.Highlight).Bold(true).Width(labelWidth),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Edge).
			Padding(0, 1),

		StatusBar: fg(p.Dim).Background(p.Bar).Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultPalette())
}

// Palette returns the palette these styles were built from.
func (s *Styles) Palette() *Palette {
	return s.palette
}

// Confidence returns the style for a confidence score.
// Scores that are absent or not numeric render muted.
func (s *Styles) Confidence(score string) lipgloss.Style {
	v, ok := ParseConfidence(score)
	if !ok {
		return s.Muted
	}
	switch {
	case v >= HighConfidence:
		return s.Success
	case v >= LowConfidence:
		return s.Warning
	default:
		return s.Error
	}
}

// ParseConfidence reads a score such as "87.5" or "87.5%".
func ParseConfidence(score string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(score), "%"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
