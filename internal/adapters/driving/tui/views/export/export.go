// Package export provides the view that writes the verified record to a file.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
)

// baseName is the default output file name without extension.
const baseName = "verified"

// View selects a format and output path and writes the export.
type View struct {
	styles   *styles.Styles
	export   driving.ExportService
	ctx      context.Context
	formats  []domain.ExportFormat
	selected int
	path     textinput.Model
	edited   bool
	busy     bool
	written  string
	err      string
}

// NewView creates a new export view. defaultFormat is preselected when available.
func NewView(s *styles.Styles, export driving.ExportService, defaultFormat domain.ExportFormat) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Prompt = "Save to: "
	ti.Focus()

	v := &View{
		styles:  s,
		export:  export,
		ctx:     context.Background(),
		formats: export.Formats(),
		path:    ti,
	}
	for i, f := range v.formats {
		if f == defaultFormat {
			v.selected = i
		}
	}
	v.path.SetValue(v.defaultPath())
	return v
}

// SetContext sets the context used for exports.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Reset restores the default path and clears messages.
func (v *View) Reset() {
	v.edited = false
	v.busy = false
	v.written = ""
	v.err = ""
	v.path.SetValue(v.defaultPath())
	v.path.CursorEnd()
}

// Update handles messages for the export view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.Exported:
		v.busy = false
		if msg.Err != nil {
			v.err = exportMessage(msg.Err)
			return v, nil
		}
		v.written = msg.Path
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "left", "shift+tab":
			v.cycle(-1)
			return v, nil
		case "right", "tab":
			v.cycle(1)
			return v, nil
		case "enter":
			return v, v.write()
		}
		before := v.path.Value()
		var cmd tea.Cmd
		v.path, cmd = v.path.Update(msg)
		if v.path.Value() != before {
			v.edited = true
		}
		return v, cmd
	}

	return v, nil
}

func (v *View) cycle(delta int) {
	if len(v.formats) == 0 {
		return
	}
	v.selected = (v.selected + delta + len(v.formats)) % len(v.formats)
	if v.edited {
		ext := filepath.Ext(v.path.Value())
		v.path.SetValue(strings.TrimSuffix(v.path.Value(), ext) + v.Format().Extension())
	} else {
		v.path.SetValue(v.defaultPath())
	}
	v.path.CursorEnd()
}

func (v *View) defaultPath() string {
	return baseName + v.Format().Extension()
}

func (v *View) write() tea.Cmd {
	path := strings.TrimSpace(v.path.Value())
	if path == "" {
		v.err = "Please choose an output file"
		return nil
	}
	if len(v.formats) == 0 {
		v.err = domain.ErrUnsupportedFormat.Error()
		return nil
	}

	v.busy = true
	v.err = ""
	v.written = ""
	ctx, export, format := v.ctx, v.export, v.Format()
	return func() tea.Msg {
		return messages.Exported{Path: path, Format: format, Err: WriteFile(ctx, export, format, path)}
	}
}

// WriteFile exports the session's verified record to path.
// A partially written file is removed on failure.
func WriteFile(ctx context.Context, export driving.ExportService, format domain.ExportFormat, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Export(ctx, format, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func exportMessage(err error) string {
	if errors.Is(err, domain.ErrNoVerifiedData) {
		return "Nothing to export yet. Verify and save a document first."
	}
	return domain.UserMessage(err)
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Export verified data"))
	b.WriteString("\n\n")

	b.WriteString("Format: ")
	for i, f := range v.formats {
		label := " " + strings.ToUpper(f.String()) + " "
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(label))
		} else {
			b.WriteString(v.styles.Muted.Render(label))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("        " + v.Format().Description()))
	b.WriteString("\n\n")
	b.WriteString(v.path.View())
	b.WriteString("\n\n")

	switch {
	case v.busy:
		b.WriteString(v.styles.Muted.Render("Exporting..."))
	case v.err != "":
		b.WriteString(v.styles.Error.Render(v.err))
	case v.written != "":
		b.WriteString(v.styles.Success.Render(fmt.Sprintf("Saved %s", v.written)))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[←/→] Format  [enter] Export  [esc] Back"))
	return b.String()
}

// Format returns the selected format.
func (v *View) Format() domain.ExportFormat {
	if len(v.formats) == 0 {
		return ""
	}
	return v.formats[v.selected]
}

// Path returns the output path.
func (v *View) Path() string {
	return v.path.Value()
}

// Written returns the path of the last successful export.
func (v *View) Written() string {
	return v.written
}

// Err returns the last error message.
func (v *View) Err() string {
	return v.err
}
