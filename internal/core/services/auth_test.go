package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docverify/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docverify/internal/core/domain"
)

type mockTokenIssuer struct {
	token string
	err   error
	calls int
}

func (m *mockTokenIssuer) Issue(_ context.Context, username, _ string) (*domain.Credentials, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Credentials{AccessToken: m.token, TokenType: "bearer", Username: username}, nil
}

func TestAuthService_SignIn(t *testing.T) {
	issuer := &mockTokenIssuer{token: "tok"}
	slot := NewCredentialSlot()
	session := memory.NewSessionStore()
	svc := NewAuthService(issuer, slot, session)
	ctx := context.Background()

	require.NoError(t, svc.SignIn(ctx, "user@example.com", "secret"))

	assert.Equal(t, "tok", slot.Credential().AccessToken)
	assert.Equal(t, "user@example.com", svc.Credentials().Username)
	stored, ok, _ := session.Get(ctx, SessionKeyAuthToken)
	assert.True(t, ok)
	assert.Equal(t, "tok", stored)
	assert.NoError(t, svc.RequireSignedIn())
}

func TestAuthService_SignIn_EmptyFields(t *testing.T) {
	issuer := &mockTokenIssuer{token: "tok"}
	svc := NewAuthService(issuer, NewCredentialSlot(), memory.NewSessionStore())

	err := svc.SignIn(context.Background(), "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), domain.MsgUsernameNeeded)
	assert.Contains(t, err.Error(), domain.MsgPasswordNeeded)
	assert.Equal(t, 0, issuer.calls)

	err = svc.SignIn(context.Background(), "user", "")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), domain.MsgUsernameNeeded)
	assert.Contains(t, err.Error(), domain.MsgPasswordNeeded)
}

func TestAuthService_SignIn_Rejected(t *testing.T) {
	slot := NewCredentialSlot()
	svc := NewAuthService(&mockTokenIssuer{err: domain.ErrInvalidLogin}, slot, memory.NewSessionStore())

	err := svc.SignIn(context.Background(), "user", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidLogin)
	assert.Nil(t, slot.Credential())
	assert.ErrorIs(t, svc.RequireSignedIn(), domain.ErrNotSignedIn)
}

func TestAuthService_SignIn_EmptyToken(t *testing.T) {
	svc := NewAuthService(&mockTokenIssuer{token: ""}, NewCredentialSlot(), memory.NewSessionStore())

	err := svc.SignIn(context.Background(), "user", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidLogin)
}

func TestAuthService_SignOut_ClearsEverything(t *testing.T) {
	slot := NewCredentialSlot()
	session := memory.NewSessionStore()
	svc := NewAuthService(&mockTokenIssuer{token: "tok"}, slot, session)
	ctx := context.Background()

	require.NoError(t, svc.SignIn(ctx, "user", "pw"))
	_ = session.Set(ctx, SessionKeyDocumentID, "abc")
	_ = session.Set(ctx, SessionKeyVerifiedData, `{}`)

	require.NoError(t, svc.SignOut(ctx))

	assert.Nil(t, slot.Credential())
	for _, key := range []string{SessionKeyAuthToken, SessionKeyDocumentID, SessionKeyVerifiedData} {
		_, ok, _ := session.Get(ctx, key)
		assert.False(t, ok, key)
	}
}

func TestAuthService_Restore(t *testing.T) {
	slot := NewCredentialSlot()
	session := memory.NewSessionStore()
	ctx := context.Background()
	_ = session.Set(ctx, SessionKeyAuthToken, "persisted")

	svc := NewAuthService(&mockTokenIssuer{}, slot, session)
	require.NoError(t, svc.Restore(ctx))

	assert.Equal(t, "persisted", slot.Credential().AccessToken)
}

func TestAuthService_Restore_Empty(t *testing.T) {
	slot := NewCredentialSlot()
	svc := NewAuthService(&mockTokenIssuer{}, slot, memory.NewSessionStore())

	require.NoError(t, svc.Restore(context.Background()))
	assert.Nil(t, slot.Credential())
}
