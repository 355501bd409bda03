package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPalette_BandsAreDistinct(t *testing.T) {
	p := DefaultPalette()

	colours := []lipgloss.Color{
		p.Accent,
		p.Highlight,
		p.Confident,
		p.Unsure,
		p.Doubtful,
	}

	seen := make(map[string]bool)
	for _, c := range colours {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[string(c)], "duplicate colour: %s", c)
		seen[string(c)] = true
	}
}

func TestNewStyles_NilPalette(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles)
	assert.Equal(t, DefaultPalette(), styles.Palette())
}

func TestStyles_AllStylesInitialised(t *testing.T) {
	styles := DefaultStyles()

	assert.NotEqual(t, lipgloss.Style{}, styles.Title)
	assert.NotEqual(t, lipgloss.Style{}, styles.FieldLabel)
	assert.NotEqual(t, lipgloss.Style{}, styles.FocusedLabel)
	assert.NotEqual(t, lipgloss.Style{}, styles.InputField)
	assert.NotEqual(t, lipgloss.Style{}, styles.StatusBar)
}

func TestStyles_Confidence(t *testing.T) {
	s := DefaultStyles()

	tests := []struct {
		score string
		want  lipgloss.Style
	}{
		{"99.5", s.Success},
		{"90", s.Success},
		{"75%", s.Warning},
		{"12", s.Error},
		{"", s.Muted},
		{"n/a", s.Muted},
	}
	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Confidence(tt.score))
		})
	}
}

func TestParseConfidence(t *testing.T) {
	v, ok := ParseConfidence(" 87.5% ")
	assert.True(t, ok)
	assert.InDelta(t, 87.5, v, 0)

	_, ok = ParseConfidence("high")
	assert.False(t, ok)
}
