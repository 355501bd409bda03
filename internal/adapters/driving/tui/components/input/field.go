// Package input provides editable form fields for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docverify/internal/core/domain"
)

// maxAreaHeight caps the rows a multi-line field occupies.
const maxAreaHeight = 6

// Field edits one extracted value. Multi-line values use a text area,
// everything else a single-line input.
type Field struct {
	key        string
	confidence string
	multiline  bool
	line       textinput.Model
	area       textarea.Model
	styles     *styles.Styles
	width      int
}

// NewField creates an editor for key initialised from data.
func NewField(s *styles.Styles, key string, data domain.FieldData) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	f := &Field{
		key:        key,
		confidence: data.ConfidenceOrEmpty(),
		multiline:  data.IsMultiline(),
		styles:     s,
		width:      50,
	}

	if f.multiline {
		ta := textarea.New()
		ta.ShowLineNumbers = false
		ta.CharLimit = 0
		ta.SetValue(data.ValueOrEmpty())
		ta.SetHeight(min(strings.Count(data.ValueOrEmpty(), "\n")+1, maxAreaHeight))
		ta.Blur()
		f.area = ta
	} else {
		ti := textinput.New()
		ti.CharLimit = 0
		ti.Prompt = ""
		ti.SetValue(data.ValueOrEmpty())
		ti.Blur()
		f.line = ti
	}
	f.SetWidth(f.width)
	return f
}

// Update forwards input messages to the active editor.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	if f.multiline {
		f.area, cmd = f.area.Update(msg)
	} else {
		f.line, cmd = f.line.Update(msg)
	}
	return f, cmd
}

// View renders label, editor and confidence on one block.
func (f *Field) View() string {
	label := f.styles.FieldLabel.Render(f.key)
	if f.Focused() {
		label = f.styles.FocusedLabel.Render(f.key)
	}

	var editor string
	if f.multiline {
		editor = f.area.View()
	} else {
		editor = f.line.View()
	}
	editor = f.styles.InputField.Render(editor)

	conf := " "
	if f.confidence != "" {
		conf = f.styles.Confidence(f.confidence).Render(f.confidence)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, label, editor, " ", conf)
}

// Key returns the field name.
func (f *Field) Key() string {
	return f.key
}

// Confidence returns the read-only confidence score.
func (f *Field) Confidence() string {
	return f.confidence
}

// Multiline reports whether the field uses a text area.
func (f *Field) Multiline() bool {
	return f.multiline
}

// Value returns the edited value.
func (f *Field) Value() string {
	if f.multiline {
		return f.area.Value()
	}
	return f.line.Value()
}

// SetValue replaces the edited value.
func (f *Field) SetValue(value string) {
	if f.multiline {
		f.area.SetValue(value)
		return
	}
	f.line.SetValue(value)
}

// Focus gives the field keyboard focus.
func (f *Field) Focus() tea.Cmd {
	if f.multiline {
		return f.area.Focus()
	}
	return f.line.Focus()
}

// Blur removes focus from the field.
func (f *Field) Blur() {
	if f.multiline {
		f.area.Blur()
		return
	}
	f.line.Blur()
}

// Focused returns whether the field has focus.
func (f *Field) Focused() bool {
	if f.multiline {
		return f.area.Focused()
	}
	return f.line.Focused()
}

// SetWidth sets the editor width.
func (f *Field) SetWidth(width int) {
	f.width = width
	editorWidth := width - 40
	if editorWidth < 20 {
		editorWidth = 20
	}
	f.line.Width = editorWidth
	if f.multiline {
		f.area.SetWidth(editorWidth)
	}
}
