package list

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

func sampleEntries() []domain.HistoryEntry {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []domain.HistoryEntry{
		{ID: "3", DocumentID: "abc", Event: domain.EventVerified, CreatedAt: at.Add(2 * time.Minute)},
		{ID: "2", DocumentID: "abc", Event: domain.EventFailed, Detail: "timeout", CreatedAt: at.Add(time.Minute)},
		{ID: "1", DocumentID: "abc", FileName: "scan.pdf", Event: domain.EventSubmitted, CreatedAt: at},
	}
}

func TestHistoryList_Empty(t *testing.T) {
	l := NewHistoryList(nil)

	assert.Contains(t, l.View(), "No history yet")
	assert.Nil(t, l.SelectedEntry())
}

func TestHistoryList_Navigation(t *testing.T) {
	l := NewHistoryList(nil)
	l.SetEntries(sampleEntries())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	require.NotNil(t, l.SelectedEntry())
	assert.Equal(t, "2", l.SelectedEntry().ID)

	l.MoveUp()
	l.MoveUp()
	assert.Equal(t, 0, l.Selected())
}

func TestHistoryList_View(t *testing.T) {
	l := NewHistoryList(nil)
	l.SetDimensions(120, 10)
	l.SetEntries(sampleEntries())

	view := l.View()
	assert.Contains(t, view, "History (3)")
	assert.Contains(t, view, "scan.pdf")
	assert.Contains(t, view, "(timeout)")
	assert.Contains(t, view, "verified")
}

func TestHistoryList_SetEntriesResetsSelection(t *testing.T) {
	l := NewHistoryList(nil)
	l.SetEntries(sampleEntries())
	l.MoveDown()

	l.SetEntries(sampleEntries()[:1])

	assert.Equal(t, 0, l.Selected())
	assert.Len(t, l.Entries(), 1)
}
