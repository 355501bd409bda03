package domain

import "time"

// Credentials stores the bearer token issued by the token endpoint.
// There is at most one per session: set on sign-in, cleared on sign-out.
type Credentials struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// TokenType is typically "bearer".
	TokenType string `json:"token_type"`
	// Username is the account the token was issued to.
	Username string `json:"username,omitempty"`
	// IssuedAt is when sign-in succeeded.
	IssuedAt time.Time `json:"issued_at"`
}

// IsAuthenticated returns true if the credentials contain a token.
func (c *Credentials) IsAuthenticated() bool {
	return c != nil && c.AccessToken != ""
}
