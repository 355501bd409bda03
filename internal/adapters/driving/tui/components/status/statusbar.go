// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/styles"
)

// State is what the bar reports on its left side.
type State string

// Bar states.
const (
	StateReady   State = "ready"
	StateWorking State = "working"
	StateError   State = "error"
	StateDone    State = "done"
	StateEditing State = "editing"
)

// Bar displays application status and keybinding hints.
// While working it animates a spinner next to the message.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	spinner  spinner.Model
	state    State
	message  string
	document string
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &Bar{
		styles:  s,
		keymap:  km,
		spinner: sp,
		state:   StateReady,
		width:   80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update advances the spinner while working.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok || s.state != StateWorking {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateWorking:
		return s.spinner.View() + " " + s.styles.Normal.Render(s.messageOr("Working..."))
	case StateError:
		return s.styles.Error.Render(s.messageOr("Error"))
	case StateDone:
		return s.styles.Success.Render(s.messageOr("Done"))
	case StateReady, StateEditing:
		return s.styles.Muted.Render(s.messageOr("Ready"))
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight shows the document name followed by the key hints that
// apply in the current state.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	switch s.state {
	case StateEditing:
		bindings = s.keymap.FormHelp()
	case StateError:
		bindings = append([]key.Binding{s.keymap.Retry}, bindings...)
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	right := strings.Join(hints, " | ")
	if s.document != "" {
		right = s.document + "  " + right
	}
	return s.styles.Muted.Render(right)
}

func (s *Bar) messageOr(fallback string) string {
	if s.message == "" {
		return fallback
	}
	return s.message
}

// Start switches to the working state and returns the spinner tick.
func (s *Bar) Start(message string) tea.Cmd {
	s.state = StateWorking
	s.message = message
	return s.spinner.Tick
}

// SetState sets the current state and message.
func (s *Bar) SetState(state State, message string) {
	s.state = state
	s.message = message
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetDocument sets the file name shown beside the key hints.
func (s *Bar) SetDocument(name string) {
	s.document = strings.TrimSpace(name)
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the state and message. The document name is kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
