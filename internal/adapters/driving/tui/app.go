package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/views/export"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/views/signin"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/views/verify"
	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the parent context for every request the views make.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView    *menu.View
	signInView  *signin.View
	uploadView  *upload.View
	verifyView  *verify.View
	exportView  *export.View
	historyView *history.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// documentID is verified on start when set.
	documentID string

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	format := domain.DefaultExportFormat
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			format = settings.ExportFormat
		}
	}

	s := styles.DefaultStyles()
	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      keymap.DefaultKeyMap(),
		menuView:    menu.NewView(s),
		signInView:  signin.NewView(s, ports.Auth),
		uploadView:  upload.NewView(s, ports.Documents),
		verifyView:  verify.NewView(s, ports.Documents),
		exportView:  export.NewView(s, ports.Export, format),
		historyView: history.NewView(s, ports.History),
		currentView: messages.ViewMenu,
	}

	if creds := ports.Auth.Credentials(); creds.IsAuthenticated() {
		a.menuView.SetUser(creds.Username)
		if id, err := ports.Documents.CurrentDocumentID(a.ctx); err == nil {
			a.menuView.SetDocument(id)
		}
	} else {
		a.currentView = messages.ViewSignIn
	}
	return a, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.signInView.SetContext(ctx)
	a.uploadView.SetContext(ctx)
	a.verifyView.SetContext(ctx)
	a.exportView.SetContext(ctx)
	a.historyView.SetContext(ctx)
	return a
}

// WithDocument opens the verify view for documentID on start.
// Ignored while signed out.
func (a *App) WithDocument(documentID string) *App {
	a.documentID = documentID
	a.menuView.SetDocument(documentID)
	if a.currentView != messages.ViewSignIn {
		a.currentView = messages.ViewVerify
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("docverify")}
	switch a.currentView {
	case messages.ViewSignIn:
		cmds = append(cmds, a.signInView.Init())
	case messages.ViewVerify:
		cmds = append(cmds, a.verifyView.Start(a.documentID))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		a.verifyView, cmd = a.verifyView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		return a, a.navigate(msg.View)

	case messages.SignOutRequested:
		return a, a.signOut(false)

	case messages.SignedOut:
		a.verifyView.Stop()
		a.menuView.SetUser("")
		a.menuView.SetDocument("")
		a.signInView.Reset()
		a.signInView.SetNotice("")
		if msg.Expired {
			a.signInView.SetNotice(domain.MsgSignedOut)
		}
		a.currentView = messages.ViewSignIn
		return a, a.signInView.Init()

	case messages.SignedIn:
		a.signInView, cmd = a.signInView.Update(msg)
		if msg.Err != nil {
			return a, cmd
		}
		if creds := a.ports.Auth.Credentials(); creds != nil {
			a.menuView.SetUser(creds.Username)
		}
		if a.documentID != "" {
			return a, a.navigate(messages.ViewVerify)
		}
		return a, a.navigate(messages.ViewUpload)

	case messages.Uploaded:
		if isExpired(msg.Err) {
			return a, a.signOut(true)
		}
		a.uploadView, cmd = a.uploadView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.documentID = msg.Result.DocumentID
		a.menuView.SetDocument(a.documentID)
		a.currentView = messages.ViewVerify
		return a, a.verifyView.Start(msg.Result.DocumentID)

	case messages.DocumentReady:
		if isExpired(msg.Err) {
			return a, a.signOut(true)
		}
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.verifyView, cmd = a.verifyView.Update(msg)
		return a, cmd

	case messages.Saved:
		if isExpired(msg.Err) {
			return a, a.signOut(true)
		}
		a.verifyView, cmd = a.verifyView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.exportView.Reset()
		a.currentView = messages.ViewExport
		return a, tea.Batch(cmd, a.exportView.Init())

	case messages.Exported:
		a.exportView, cmd = a.exportView.Update(msg)
		return a, cmd

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		a.verifyView.Stop()
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if keymap.Matches(key, a.keymap.Quit) {
		a.verifyView.Stop()
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		if keymap.Matches(key, a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return a, nil
		}
	case messages.ViewSignIn:
		// Signed-out users cannot leave the form except by quitting.
		if keymap.Matches(key, a.keymap.Back) && a.ports.Auth.Credentials().IsAuthenticated() {
			a.currentView = messages.ViewMenu
			return a, nil
		}
	default:
		if keymap.Matches(key, a.keymap.Back) {
			return a, a.navigate(messages.ViewMenu)
		}
	}

	return a, a.forward(msg)
}

// navigate switches views, stopping a poll that is left behind.
func (a *App) navigate(view messages.ViewType) tea.Cmd {
	if a.currentView == messages.ViewVerify && view != messages.ViewVerify {
		a.verifyView.Stop()
	}
	a.currentView = view

	switch view {
	case messages.ViewSignIn:
		a.signInView.Reset()
		return a.signInView.Init()
	case messages.ViewUpload:
		a.uploadView.Reset()
		return a.uploadView.Init()
	case messages.ViewVerify:
		switch a.verifyView.State() {
		case verify.StateEditing, verify.StateSaving, verify.StatePolling:
			return nil
		}
		return a.verifyView.Start(a.documentID)
	case messages.ViewExport:
		a.exportView.Reset()
		return a.exportView.Init()
	case messages.ViewHistory:
		return a.historyView.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

// signOut clears the credential and session. The request is detached from
// the app context so it completes during shutdown.
func (a *App) signOut(expired bool) tea.Cmd {
	a.verifyView.Stop()
	ctx, auth := context.WithoutCancel(a.ctx), a.ports.Auth
	return func() tea.Msg {
		if err := auth.SignOut(ctx); err != nil {
			logger.Warn("Failed to clear session: %v", err)
		}
		return messages.SignedOut{Expired: expired}
	}
}

func isExpired(err error) bool {
	return err != nil && errors.Is(err, domain.ErrUnauthenticated)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSignIn:
		a.signInView, cmd = a.signInView.Update(msg)
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewVerify:
		a.verifyView, cmd = a.verifyView.Update(msg)
	case messages.ViewExport:
		a.exportView, cmd = a.exportView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSignIn:
		return a.signInView.View()
	case messages.ViewUpload:
		return a.uploadView.View()
	case messages.ViewVerify:
		return a.verifyView.View()
	case messages.ViewExport:
		return a.exportView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  ?           This help
  q           Quit

Verify:
  tab         Next field
  shift+tab   Previous field
  ctrl+s      Save verified data
  r           Retry after a failed extraction

Export:
  ←/→         Choose format
  enter       Write file

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	a.verifyView.Stop()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.verifyView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
}
