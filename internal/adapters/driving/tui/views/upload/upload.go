// Package upload provides the document submission view.
package upload

import (
	"context"
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

// View asks for a file path and submits it.
type View struct {
	styles *styles.Styles
	docs   driving.DocumentService
	ctx    context.Context
	path   textinput.Model
	busy   bool
	err    string
}

// NewView creates a new upload view.
func NewView(s *styles.Styles, docs driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "path/to/document.pdf"
	ti.Prompt = "File: "
	ti.Focus()

	return &View{
		styles: s,
		docs:   docs,
		ctx:    context.Background(),
		path:   ti,
	}
}

// SetContext sets the context used for uploads.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the form.
func (v *View) Reset() {
	v.path.Reset()
	v.path.Focus()
	v.busy = false
	v.err = ""
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.Uploaded:
		v.busy = false
		if msg.Err != nil {
			v.err = domain.UserMessage(msg.Err)
		}
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		if msg.Type == tea.KeyEnter {
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	v.path, cmd = v.path.Update(msg)
	return v, cmd
}

func (v *View) submit() tea.Cmd {
	path := expandHome(strings.TrimSpace(v.path.Value()))
	if path == "" {
		v.err = "Please choose a file"
		return nil
	}

	v.busy = true
	v.err = ""
	ctx, docs := v.ctx, v.docs
	return func() tea.Msg {
		result, err := docs.UploadFile(ctx, path)
		return messages.Uploaded{FileName: filepath.Base(path), Result: result, Err: err}
	}
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Upload document"))
	b.WriteString("\n\n")
	b.WriteString(v.path.View())
	b.WriteString("\n\n")

	switch {
	case v.busy:
		b.WriteString(v.styles.Muted.Render("Uploading..."))
	case v.err != "":
		b.WriteString(v.styles.Error.Render(v.err))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] Upload  [esc] Back"))
	return b.String()
}

// Busy reports whether an upload is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the last error message.
func (v *View) Err() string {
	return v.err
}
