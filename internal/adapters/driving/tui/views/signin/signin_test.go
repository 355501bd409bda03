package signin

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docverify/internal/core/domain"
)

type mockAuth struct {
	err      error
	username string
	password string
}

func (m *mockAuth) SignIn(_ context.Context, username, password string) error {
	m.username, m.password = username, password
	return m.err
}

func (m *mockAuth) SignOut(context.Context) error { return nil }

func (m *mockAuth) Credentials() *domain.Credentials { return nil }

func typeText(v *View, s string) {
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestView_SubmitsCredentials(t *testing.T) {
	auth := &mockAuth{}
	v := NewView(nil, auth)

	typeText(v, " kim ")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(v, "s3cret")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, v.Busy())

	msg := cmd()
	assert.Equal(t, messages.SignedIn{}, msg)
	assert.Equal(t, "kim", auth.username)
	assert.Equal(t, "s3cret", auth.password)

	v.Update(msg)
	assert.False(t, v.Busy())
}

func TestView_IgnoresKeysWhileBusy(t *testing.T) {
	v := NewView(nil, &mockAuth{})
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	_, again := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, again)
}

func TestView_FieldErrors(t *testing.T) {
	v := NewView(nil, &mockAuth{})
	err := errors.Join(
		&domain.FieldError{Field: "username", Message: domain.MsgUsernameNeeded},
		&domain.FieldError{Field: "password", Message: domain.MsgPasswordNeeded},
	)

	v.Update(messages.SignedIn{Err: err})

	assert.Equal(t, domain.MsgUsernameNeeded, v.FieldError("username"))
	assert.Equal(t, domain.MsgPasswordNeeded, v.FieldError("password"))
	assert.Empty(t, v.Err())
	assert.Contains(t, v.View(), domain.MsgPasswordNeeded)
}

func TestView_InvalidLogin(t *testing.T) {
	v := NewView(nil, &mockAuth{})

	v.Update(messages.SignedIn{Err: fmt.Errorf("token request: %w", domain.ErrInvalidLogin)})

	assert.Equal(t, domain.ErrInvalidLogin.Error(), v.Err())
	assert.Contains(t, v.View(), "The email or password you've entered is wrong.")
}

func TestView_NoticeAndReset(t *testing.T) {
	v := NewView(nil, &mockAuth{})
	v.SetNotice(domain.MsgSignedOut)
	typeText(v, "kim")
	v.Update(messages.SignedIn{Err: domain.ErrInvalidLogin})

	assert.Contains(t, v.View(), domain.MsgSignedOut)

	v.Reset()
	assert.Empty(t, v.Err())
	assert.Contains(t, v.View(), domain.MsgSignedOut)
	assert.NotContains(t, v.View(), "kim")
}

func TestView_PasswordIsMasked(t *testing.T) {
	v := NewView(nil, &mockAuth{})
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(v, "hunter2")

	assert.NotContains(t, v.View(), "hunter2")
}
