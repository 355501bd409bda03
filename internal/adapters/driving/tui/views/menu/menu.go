// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/styles"
)

// Action is what selecting an item does.
type Action int

// Menu actions.
const (
	ActionNavigate Action = iota
	ActionSignOut
	ActionQuit
)

// Item is a single menu entry.
type Item struct {
	Label  string
	Hint   string
	View   messages.ViewType
	Action Action
}

// View is the main menu.
type View struct {
	styles   *styles.Styles
	keys     *keymap.KeyMap
	items    []Item
	selected int
	user     string
	document string
	ready    bool
}

// NewView creates the menu.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		items: []Item{
			{Label: "Upload document", Hint: "Send a scan or PDF for extraction", View: messages.ViewUpload},
			{Label: "Verify extracted data", Hint: "Review and correct the extracted fields", View: messages.ViewVerify},
			{Label: "Export verified data", Hint: "Write the saved record as CSV, JSON or XLSX", View: messages.ViewExport},
			{Label: "History", Hint: "Uploads, verifications and exports on this machine", View: messages.ViewHistory},
			{Label: "Sign out", Hint: "Forget the credential and current document", Action: ActionSignOut},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Action: ActionQuit},
		},
	}
}

// Init implements the view lifecycle.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, v.keys.Up):
			v.selected = max(v.selected-1, 0)
		case keymap.Matches(key, v.keys.Down):
			v.selected = min(v.selected+1, len(v.items)-1)
		case keymap.Matches(key, v.keys.Select):
			return v, v.choose(v.items[v.selected])
		case key == "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	switch item.Action {
	case ActionQuit:
		return tea.Quit
	case ActionSignOut:
		return func() tea.Msg { return messages.SignOutRequested{} }
	default:
		return func() tea.Msg { return messages.ViewChanged{View: item.View} }
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("docverify"))
	b.WriteString("\n\n")
	subtitle := "Document extraction and verification"
	if v.user != "" {
		subtitle += " · signed in as " + v.user
	}
	b.WriteString(v.styles.Muted.Render(subtitle))
	b.WriteString("\n")
	if v.document != "" {
		b.WriteString(v.styles.Muted.Render("Current document: " + v.document))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString("> " + v.styles.Subtitle.Render(item.Label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(item.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if hint := v.items[v.selected].Hint; hint != "" {
		b.WriteString(v.styles.Muted.Render(hint))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [?] Help  [q] Quit"))

	return b.String()
}

// SetUser sets the signed-in account shown under the title.
func (v *View) SetUser(user string) {
	v.user = user
}

// SetDocument sets the document the verify and export items act on.
func (v *View) SetDocument(documentID string) {
	v.document = documentID
}

// SetDimensions marks the view ready to render.
func (v *View) SetDimensions(_, _ int) {
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}
