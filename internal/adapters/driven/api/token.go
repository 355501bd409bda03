package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
	"github.com/custodia-labs/docverify/internal/logger"
)

// Ensure TokenIssuer implements the interface.
var _ driven.TokenIssuer = (*TokenIssuer)(nil)

const tokenPath = "/api/token"

// TokenResponse holds the response from a token exchange.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenIssuer exchanges a username and password for a bearer token.
// It does not go through the Gateway: sign-in carries no credential.
type TokenIssuer struct {
	tokenURL string
	client   *http.Client
	now      func() time.Time
}

// NewTokenIssuer creates an issuer for the API at baseURL.
func NewTokenIssuer(baseURL string, timeout time.Duration) (*TokenIssuer, error) {
	base, err := normaliseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &TokenIssuer{
		tokenURL: base + tokenPath,
		client:   &http.Client{Timeout: timeout},
		now:      time.Now,
	}, nil
}

// Issue posts the credentials and returns the issued token.
// A 429 response is reported as domain.ErrTooManySignIns and any other
// non-2xx response as domain.ErrInvalidLogin.
func (t *TokenIssuer) Issue(ctx context.Context, username, password string) (*domain.Credentials, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("encode login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		msg := http.StatusText(resp.StatusCode)
		if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&errResp); err == nil && errResp.Detail != "" {
			msg = errResp.Detail
		}
		logger.Debug("token request failed with status %d: %s", resp.StatusCode, msg)
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			URL:        t.tokenURL,
		}
		apiErr.Err = loginError(apiErr)
		return nil, apiErr
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access_token", domain.ErrInvalidLogin)
	}

	return &domain.Credentials{
		AccessToken: tokenResp.AccessToken,
		TokenType:   tokenResp.TokenType,
		Username:    username,
		IssuedAt:    t.now(),
	}, nil
}

// loginError maps a rejected token request to the error shown at sign-in.
func loginError(err error) error {
	if IsRateLimited(err) {
		return domain.ErrTooManySignIns
	}
	return domain.ErrInvalidLogin
}
