// Package verify provides the extraction wait and field verification form.
package verify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
)

// State is the phase the view is in.
type State int

const (
	StateIdle State = iota
	StatePolling
	StateEditing
	StateSaving
	StateSaved
	StateFailed
)

// linesPerField approximates the rendered height of a single-line field.
const linesPerField = 3

// View polls a document until extraction completes and then edits its fields.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	docs   driving.DocumentService
	ctx    context.Context
	bar    *status.Bar

	documentID string
	job        *domain.DocumentJob
	original   domain.ExtractedData
	fields     []*input.Field
	focus      int
	offset     int

	state  State
	err    string
	seq    int
	cancel context.CancelFunc

	width  int
	height int
}

// NewView creates a new verify view.
func NewView(s *styles.Styles, docs driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		styles: s,
		keymap: km,
		docs:   docs,
		ctx:    context.Background(),
		bar:    status.NewBar(s, km),
		width:  80,
		height: 24,
	}
}

// SetContext sets the parent context for polling and saving.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Start begins polling documentID. An empty id uses the last upload.
// Any poll already running is cancelled.
func (v *View) Start(documentID string) tea.Cmd {
	v.Stop()

	v.seq++
	v.documentID = documentID
	v.job = nil
	v.bar.SetDocument("")
	v.original = nil
	v.fields = nil
	v.focus = 0
	v.offset = 0
	v.err = ""
	v.state = StatePolling

	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel

	seq, docs := v.seq, v.docs
	poll := func() tea.Msg {
		job, err := docs.Await(ctx, documentID)
		id := documentID
		if job != nil {
			id = job.DocumentID
		}
		return messages.DocumentReady{Seq: seq, DocumentID: id, Job: job, Err: err}
	}
	return tea.Batch(v.bar.Start("Extracting..."), poll)
}

// Stop cancels a running poll. The view is left idle.
func (v *View) Stop() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	if v.state == StatePolling {
		v.state = StateIdle
		v.bar.Clear()
	}
}

// Update handles messages for the verify view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.bar, cmd = v.bar.Update(msg)
		return v, cmd

	case messages.DocumentReady:
		if msg.Seq != v.seq || v.state != StatePolling {
			return v, nil
		}
		v.cancel = nil
		v.ready(msg)
		return v, v.focusCmd()

	case messages.Saved:
		if v.state != StateSaving {
			return v, nil
		}
		if msg.Err != nil {
			v.state = StateEditing
			v.err = domain.UserMessage(msg.Err)
			v.bar.SetState(status.StateError, v.err)
			return v, nil
		}
		v.state = StateSaved
		v.bar.SetState(status.StateDone, "Saved")
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) ready(msg messages.DocumentReady) {
	if msg.Err != nil {
		v.fail(msg.Err)
		return
	}

	v.documentID = msg.DocumentID
	v.job = msg.Job
	v.bar.SetDocument(msg.Job.DisplayFileName())
	data, err := msg.Job.Fields()
	if err != nil {
		v.fail(err)
		return
	}

	v.original = data.Clone()
	v.fields = make([]*input.Field, 0, len(data))
	for _, key := range data.SortedKeys() {
		f := input.NewField(v.styles, key, data[key])
		f.SetWidth(v.width)
		v.fields = append(v.fields, f)
	}
	v.state = StateEditing
	v.bar.SetState(status.StateEditing, fmt.Sprintf("%d fields", len(v.fields)))
}

func (v *View) fail(err error) {
	if errors.Is(err, domain.ErrCancelled) {
		v.state = StateIdle
		v.bar.Clear()
		return
	}
	v.state = StateFailed
	v.err = domain.UserMessage(err)
	v.bar.SetState(status.StateError, v.err)
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch v.state {
	case StateFailed:
		if keymap.Matches(key, v.keymap.Retry) {
			return v, v.Start(v.documentID)
		}
		return v, nil

	case StateEditing:
		switch {
		case keymap.Matches(key, v.keymap.Save):
			return v, v.save()
		case keymap.Matches(key, v.keymap.NextField):
			return v, v.moveFocus(1)
		case keymap.Matches(key, v.keymap.PrevField):
			return v, v.moveFocus(-1)
		}
		if len(v.fields) == 0 {
			return v, nil
		}
		var cmd tea.Cmd
		v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
		return v, cmd
	}

	return v, nil
}

func (v *View) moveFocus(delta int) tea.Cmd {
	if len(v.fields) == 0 {
		return nil
	}
	v.fields[v.focus].Blur()
	v.focus = (v.focus + delta + len(v.fields)) % len(v.fields)
	v.scrollToFocus()
	return v.focusCmd()
}

func (v *View) focusCmd() tea.Cmd {
	if v.state != StateEditing || len(v.fields) == 0 {
		return nil
	}
	return v.fields[v.focus].Focus()
}

func (v *View) scrollToFocus() {
	visible := v.visibleFields()
	if v.focus < v.offset {
		v.offset = v.focus
	}
	if v.focus >= v.offset+visible {
		v.offset = v.focus - visible + 1
	}
}

func (v *View) visibleFields() int {
	n := (v.height - 8) / linesPerField
	if n < 1 {
		n = 1
	}
	return n
}

// Values returns the edited data. Fields that had no value and were left
// empty stay absent.
func (v *View) Values() domain.ExtractedData {
	data := v.original.Clone()
	if data == nil {
		data = domain.ExtractedData{}
	}
	for _, f := range v.fields {
		value := f.Value()
		if data[f.Key()].Value == nil && value == "" {
			continue
		}
		data.SetValue(f.Key(), value)
	}
	return data
}

func (v *View) save() tea.Cmd {
	v.state = StateSaving
	v.err = ""

	ctx, docs, id, data := v.ctx, v.docs, v.documentID, v.Values()
	return tea.Batch(v.bar.Start("Saving..."), func() tea.Msg {
		record, err := docs.Save(ctx, id, data)
		return messages.Saved{Record: record, Err: err}
	})
}

// View renders the current phase.
func (v *View) View() string {
	var b strings.Builder

	title := "Verify"
	if v.job != nil {
		title += " " + strings.TrimSpace(v.job.DisplayFileName())
		if v.job.DocumentType != "" {
			title += " (" + v.job.DocumentType + ")"
		}
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	if v.documentID != "" {
		b.WriteString(v.styles.Muted.Render("Document " + v.documentID))
	}
	b.WriteString("\n\n")

	switch v.state {
	case StateIdle:
		b.WriteString(v.styles.Muted.Render("No document selected. Upload one first."))
	case StatePolling:
		b.WriteString(v.styles.Normal.Render("Waiting for extraction to finish..."))
	case StateFailed:
		b.WriteString(v.styles.Error.Render(v.err))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[r] Retry  [esc] Back"))
	case StateEditing, StateSaving, StateSaved:
		b.WriteString(v.renderFields())
		if v.state == StateSaved {
			b.WriteString("\n")
			b.WriteString(v.styles.Success.Render("Verified data saved."))
		}
	}

	b.WriteString("\n\n")
	v.bar.SetWidth(v.width)
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderFields() string {
	if len(v.fields) == 0 {
		return v.styles.Muted.Render("No fields were extracted.")
	}
	end := min(v.offset+v.visibleFields(), len(v.fields))
	lines := make([]string, 0, end-v.offset+2)
	if v.offset > 0 {
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("  ↑ %d more", v.offset)))
	}
	for _, f := range v.fields[v.offset:end] {
		lines = append(lines, f.View())
	}
	if end < len(v.fields) {
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("  ↓ %d more", len(v.fields)-end)))
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, f := range v.fields {
		f.SetWidth(width)
	}
	v.scrollToFocus()
}

// State returns the current phase.
func (v *View) State() State {
	return v.state
}

// DocumentID returns the document being verified.
func (v *View) DocumentID() string {
	return v.documentID
}

// Fields returns the form fields in display order.
func (v *View) Fields() []*input.Field {
	return v.fields
}

// Focus returns the index of the focused field.
func (v *View) Focus() int {
	return v.focus
}

// Err returns the current error message.
func (v *View) Err() string {
	return v.err
}
