package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

func TestCredentialSlot_SetAndClear(t *testing.T) {
	slot := NewCredentialSlot()
	assert.Nil(t, slot.Credential())

	slot.SetCredential(&domain.Credentials{AccessToken: "tok"})
	require.NotNil(t, slot.Credential())
	assert.Equal(t, "tok", slot.Credential().AccessToken)

	slot.ClearCredential()
	assert.Nil(t, slot.Credential())
}

func TestCredentialSlot_CopiesOnSet(t *testing.T) {
	slot := NewCredentialSlot()
	creds := &domain.Credentials{AccessToken: "tok"}

	slot.SetCredential(creds)
	creds.AccessToken = "changed"

	assert.Equal(t, "tok", slot.Credential().AccessToken)
}

func TestCredentialSlot_Token(t *testing.T) {
	slot := NewCredentialSlot()
	slot.SetCredential(&domain.Credentials{AccessToken: "tok", TokenType: "bearer"})

	tok, err := slot.Token()
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "http://example.test", nil)
	tok.SetAuthHeader(req)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
}

func TestCredentialSlot_Token_Empty(t *testing.T) {
	tok, err := NewCredentialSlot().Token()
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "http://example.test", nil)
	tok.SetAuthHeader(req)
	assert.Equal(t, "Bearer ", req.Header.Get("Authorization"))
}
