// Package signin provides the username and password form.
package signin

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
)

// Form field names reported by the auth service.
const (
	fieldUsername = "username"
	fieldPassword = "password"
)

// View is the sign-in form.
type View struct {
	styles   *styles.Styles
	auth     driving.AuthService
	ctx      context.Context
	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool

	// notice is shown above the form, e.g. after the session expired.
	notice string

	// fieldErrs holds per-field validation messages.
	fieldErrs map[string]string

	// err is the server-side failure message.
	err string
}

// NewView creates a new sign-in view.
func NewView(s *styles.Styles, auth driving.AuthService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	user := textinput.New()
	user.Placeholder = "username"
	user.Prompt = "Username: "
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = "Password: "
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return &View{
		styles:    s,
		auth:      auth,
		ctx:       context.Background(),
		username:  user,
		password:  pass,
		fieldErrs: map[string]string{},
	}
}

// SetContext sets the context used for sign-in requests.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the form, keeping any notice.
func (v *View) Reset() {
	v.username.Reset()
	v.password.Reset()
	v.focus = 0
	v.username.Focus()
	v.password.Blur()
	v.busy = false
	v.err = ""
	v.fieldErrs = map[string]string{}
}

// SetNotice sets the message shown above the form.
func (v *View) SetNotice(notice string) {
	v.notice = notice
}

// Update handles messages for the sign-in view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.SignedIn:
		v.busy = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.notice = ""
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			v.toggleFocus()
			return v, nil
		case "enter":
			if v.focus == 0 {
				v.toggleFocus()
				return v, nil
			}
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	if v.focus == 0 {
		v.username, cmd = v.username.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

func (v *View) toggleFocus() {
	if v.focus == 0 {
		v.focus = 1
		v.username.Blur()
		v.password.Focus()
		return
	}
	v.focus = 0
	v.password.Blur()
	v.username.Focus()
}

func (v *View) submit() tea.Cmd {
	v.busy = true
	v.err = ""
	v.fieldErrs = map[string]string{}

	ctx, auth := v.ctx, v.auth
	username := strings.TrimSpace(v.username.Value())
	password := v.password.Value()
	return func() tea.Msg {
		return messages.SignedIn{Err: auth.SignIn(ctx, username, password)}
	}
}

// setError splits err into per-field messages and a form-level message.
func (v *View) setError(err error) {
	for _, e := range flatten(err) {
		var fe *domain.FieldError
		if errors.As(e, &fe) {
			v.fieldErrs[fe.Field] = fe.Message
			continue
		}
		v.err = domain.UserMessage(e)
	}
}

func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Sign in"))
	b.WriteString("\n\n")
	if v.notice != "" {
		b.WriteString(v.styles.Warning.Render(v.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(v.username.View())
	b.WriteString("\n")
	if msg := v.fieldErrs[fieldUsername]; msg != "" {
		b.WriteString(v.styles.Error.Render("  " + msg))
		b.WriteString("\n")
	}
	b.WriteString(v.password.View())
	b.WriteString("\n")
	if msg := v.fieldErrs[fieldPassword]; msg != "" {
		b.WriteString(v.styles.Error.Render("  " + msg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case v.busy:
		b.WriteString(v.styles.Muted.Render("Signing in..."))
	case v.err != "":
		b.WriteString(v.styles.Error.Render(v.err))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[tab] Switch field  [enter] Sign in  [ctrl+c] Quit"))
	return b.String()
}

// Busy reports whether a sign-in request is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// FieldError returns the validation message for a field.
func (v *View) FieldError(field string) string {
	return v.fieldErrs[field]
}

// Err returns the form-level error message.
func (v *View) Err() string {
	return v.err
}
