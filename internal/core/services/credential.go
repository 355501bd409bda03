package services

import (
	"sync"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

// Ensure CredentialSlot can back an authenticated transport.
var _ oauth2.TokenSource = (*CredentialSlot)(nil)

// CredentialSlot holds the session's single bearer credential.
// It is set on sign-in and cleared on sign-out. Nothing else writes it.
type CredentialSlot struct {
	mu    sync.RWMutex
	creds *domain.Credentials
}

// NewCredentialSlot returns an empty slot.
func NewCredentialSlot() *CredentialSlot {
	return &CredentialSlot{}
}

// SetCredential replaces the held credential.
func (s *CredentialSlot) SetCredential(creds *domain.Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if creds == nil {
		s.creds = nil
		return
	}
	c := *creds
	s.creds = &c
}

// ClearCredential empties the slot.
func (s *CredentialSlot) ClearCredential() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
}

// Credential returns a copy of the held credential, or nil.
func (s *CredentialSlot) Credential() *domain.Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil
	}
	c := *s.creds
	return &c
}

// Token returns the credential as a bearer token.
// An empty slot yields an empty access token, so requests still carry
// "Authorization: Bearer " and the server decides.
func (s *CredentialSlot) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok := &oauth2.Token{TokenType: "Bearer"}
	if s.creds != nil {
		tok.AccessToken = s.creds.AccessToken
	}
	return tok, nil
}
