package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
	"github.com/custodia-labs/docverify/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService signs the user in and out.
// It is the only writer of the credential slot.
type AuthService struct {
	issuer  driven.TokenIssuer
	slot    *CredentialSlot
	session driven.SessionStore
}

// NewAuthService creates a new auth service.
func NewAuthService(issuer driven.TokenIssuer, slot *CredentialSlot, session driven.SessionStore) *AuthService {
	return &AuthService{
		issuer:  issuer,
		slot:    slot,
		session: session,
	}
}

// SignIn validates the fields, requests a token and stores it.
func (s *AuthService) SignIn(ctx context.Context, username, password string) error {
	var errs []error
	if strings.TrimSpace(username) == "" {
		errs = append(errs, &domain.FieldError{Field: "username", Message: domain.MsgUsernameNeeded})
	}
	if password == "" {
		errs = append(errs, &domain.FieldError{Field: "password", Message: domain.MsgPasswordNeeded})
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	creds, err := s.issuer.Issue(ctx, username, password)
	if err != nil {
		return err
	}
	if !creds.IsAuthenticated() {
		return domain.ErrInvalidLogin
	}

	if err := s.session.Set(ctx, SessionKeyAuthToken, creds.AccessToken); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	s.slot.SetCredential(creds)

	logger.Debug("signed in as %s", username)
	return nil
}

// SignOut clears the credential and every session key.
func (s *AuthService) SignOut(ctx context.Context) error {
	s.slot.ClearCredential()
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	logger.Debug("signed out")
	return nil
}

// Credentials returns the current credentials, or nil when signed out.
func (s *AuthService) Credentials() *domain.Credentials {
	return s.slot.Credential()
}

// Restore loads a credential persisted by an earlier sign-in.
// A missing credential leaves the slot empty and is not an error.
func (s *AuthService) Restore(ctx context.Context) error {
	token, ok, err := s.session.Get(ctx, SessionKeyAuthToken)
	if err != nil {
		return fmt.Errorf("read credential: %w", err)
	}
	if !ok || token == "" {
		return nil
	}
	s.slot.SetCredential(&domain.Credentials{AccessToken: token, TokenType: "bearer"})
	return nil
}

// RequireSignedIn returns domain.ErrNotSignedIn when no credential is held.
func (s *AuthService) RequireSignedIn() error {
	if !s.slot.Credential().IsAuthenticated() {
		return domain.ErrNotSignedIn
	}
	return nil
}
