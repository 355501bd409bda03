// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docverify/internal/core/domain"
)

// timeFormat is how event times are shown.
const timeFormat = "2006-01-02 15:04:05"

// HistoryList displays workflow events in a navigable list.
type HistoryList struct {
	entries  []domain.HistoryEntry
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewHistoryList creates a new history list component.
func NewHistoryList(s *styles.Styles) *HistoryList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &HistoryList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles list navigation messages.
func (r *HistoryList) Update(msg tea.Msg) (*HistoryList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of entries.
func (r *HistoryList) View() string {
	if len(r.entries) == 0 {
		return r.styles.Muted.Render("No history yet")
	}

	visible := r.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.entries))

	lines := make([]string, 0, end-start+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("History (%d)", len(r.entries))), "")
	for i := start; i < end; i++ {
		lines = append(lines, r.renderEntry(i, &r.entries[i]))
	}
	return strings.Join(lines, "\n")
}

func (r *HistoryList) renderEntry(index int, e *domain.HistoryEntry) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	name := e.FileName
	if name == "" {
		name = e.DocumentID
	}
	line := fmt.Sprintf("%s%s  %-10s %s", indicator, e.CreatedAt.Local().Format(timeFormat), e.Event, name)
	if e.Detail != "" {
		line += " (" + e.Detail + ")"
	}
	if len(line) > r.width && r.width > 3 {
		line = line[:r.width-3] + "..."
	}

	switch {
	case index == r.selected:
		return r.styles.Selected.Render(line)
	case e.Event == domain.EventFailed:
		return r.styles.Error.Render(line)
	default:
		return r.styles.Normal.Render(line)
	}
}

// SetEntries replaces the list contents.
func (r *HistoryList) SetEntries(entries []domain.HistoryEntry) {
	r.entries = entries
	r.selected = 0
}

// Entries returns the current entries.
func (r *HistoryList) Entries() []domain.HistoryEntry {
	return r.entries
}

// Selected returns the index of the selected entry.
func (r *HistoryList) Selected() int {
	return r.selected
}

// SelectedEntry returns the selected entry, or nil if the list is empty.
func (r *HistoryList) SelectedEntry() *domain.HistoryEntry {
	if len(r.entries) == 0 {
		return nil
	}
	return &r.entries[r.selected]
}

// MoveUp moves selection up.
func (r *HistoryList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *HistoryList) MoveDown() {
	if r.selected < len(r.entries)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *HistoryList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}
