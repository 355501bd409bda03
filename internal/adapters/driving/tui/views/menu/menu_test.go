package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/messages"
)

func TestNewView(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Len(t, view.Items(), 7)
	assert.Equal(t, 0, view.Selected())
	assert.Nil(t, view.Init())
}

func TestView_Update_Navigate(t *testing.T) {
	view := NewView(nil)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.Selected())

	for i := 0; i < 20; i++ {
		view.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, len(view.Items())-1, view.Selected())
}

func TestView_Update_EnterChangesView(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewChanged{View: messages.ViewUpload}, cmd())
}

func TestView_Update_EnterSignOut(t *testing.T) {
	view := NewView(nil)
	for view.Items()[view.Selected()].Label != "Sign out" {
		view.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.SignOutRequested{}, cmd())
}

func TestView_Update_Quit(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)

	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_View(t *testing.T) {
	view := NewView(nil)
	assert.Equal(t, "Initialising...", view.View())

	view.SetDimensions(80, 24)
	view.SetUser("kim@example.com")

	out := view.View()
	assert.Contains(t, out, "docverify")
	assert.Contains(t, out, "kim@example.com")
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "Upload document")
}

func TestView_View_DocumentAndHint(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)

	assert.NotContains(t, view.View(), "Current document")
	assert.Contains(t, view.View(), "Send a scan or PDF for extraction")

	view.SetDocument("doc-42")
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	out := view.View()
	assert.Contains(t, out, "Current document: doc-42")
	assert.Contains(t, out, "Review and correct the extracted fields")
}

func TestView_Update_EnterQuitItem(t *testing.T) {
	view := NewView(nil)
	for view.Items()[view.Selected()].Action != ActionQuit {
		view.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
