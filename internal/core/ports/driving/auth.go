package driving

import (
	"context"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

// AuthService manages the session credential.
type AuthService interface {
	// SignIn exchanges a username and password for a bearer token and
	// stores it for subsequent requests.
	// Returns domain.ErrInvalidInput for empty fields, domain.ErrInvalidLogin
	// when the server rejects the login.
	SignIn(ctx context.Context, username, password string) error

	// SignOut clears the credential and all session state.
	SignOut(ctx context.Context) error

	// Credentials returns the current credentials, or nil when signed out.
	Credentials() *domain.Credentials
}
