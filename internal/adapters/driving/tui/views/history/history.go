// Package history provides the view listing recorded workflow events.
package history

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
)

// Limit is the number of entries loaded.
const Limit = 200

// View shows the most recent history entries.
type View struct {
	styles  *styles.Styles
	history driving.HistoryService
	ctx     context.Context
	list    *list.HistoryList
	loading bool
	err     string
}

// NewView creates a new history view. history may be nil.
func NewView(s *styles.Styles, history driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		history: history,
		ctx:     context.Background(),
		list:    list.NewHistoryList(s),
	}
}

// SetContext sets the context used for loading.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the entries.
func (v *View) Init() tea.Cmd {
	if v.history == nil {
		return nil
	}
	v.loading = true
	v.err = ""
	ctx, history := v.ctx, v.history
	return func() tea.Msg {
		entries, err := history.List(ctx, Limit)
		return messages.HistoryLoaded{Entries: entries, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.HistoryLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = domain.UserMessage(msg.Err)
			return v, nil
		}
		v.list.SetEntries(msg.Entries)
		return v, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the list.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("History"))
	b.WriteString("\n\n")

	switch {
	case v.history == nil:
		b.WriteString(v.styles.Muted.Render("History is not available."))
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != "":
		b.WriteString(v.styles.Error.Render(v.err))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [esc] Back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetDimensions(width, height-6)
}

// Entries returns the loaded entries.
func (v *View) Entries() []domain.HistoryEntry {
	return v.list.Entries()
}
