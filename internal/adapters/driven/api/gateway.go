package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/docverify/internal/core/ports/driven"
	"github.com/custodia-labs/docverify/internal/logger"
)

// Ensure Gateway implements the interface.
var _ driven.Gateway = (*Gateway)(nil)

const contentTypeJSON = "application/json"

// Gateway sends authenticated requests to the extraction API.
type Gateway struct {
	baseURL string
	tokens  oauth2.TokenSource
	client  *http.Client
	limiter *RateLimiter
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *Gateway) { g.client = c }
}

// WithRateLimiter throttles requests through l.
func WithRateLimiter(l *RateLimiter) GatewayOption {
	return func(g *Gateway) { g.limiter = l }
}

// NewGateway creates a gateway for baseURL.
// tokens is read on every call; an empty token still sends the header.
func NewGateway(baseURL string, tokens oauth2.TokenSource, timeout time.Duration, opts ...GatewayOption) (*Gateway, error) {
	base, err := normaliseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	g := &Gateway{
		baseURL: base,
		tokens:  tokens,
		client:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Send performs exactly one request.
// Authorization and Content-Type are always set, replacing caller values.
// Non-2xx responses are returned, not converted to errors.
func (g *Gateway) Send(ctx context.Context, r driven.Request) (*http.Response, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, g.URL(r.Path), bytes.NewReader(r.Body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, values := range r.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	tok, err := g.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("credential: %w", err)
	}
	tok.SetAuthHeader(req)
	req.Header.Set("Content-Type", contentTypeJSON)

	logger.Debug("%s %s", r.Method, req.URL.Redacted())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	if g.limiter != nil {
		g.limiter.Observe(resp)
	}
	return resp, nil
}

// URL returns the absolute URL for an API path.
func (g *Gateway) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return g.baseURL + path
}

// normaliseBaseURL validates an absolute http(s) URL and strips trailing slashes.
func normaliseBaseURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}
