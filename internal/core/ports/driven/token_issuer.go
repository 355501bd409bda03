package driven

import (
	"context"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

// TokenIssuer exchanges a username and password for a bearer token.
// It is unauthenticated and does not go through the Gateway.
type TokenIssuer interface {
	// Issue returns credentials on success.
	// Returns domain.ErrInvalidLogin when the server rejects the login.
	Issue(ctx context.Context, username, password string) (*domain.Credentials, error)
}
