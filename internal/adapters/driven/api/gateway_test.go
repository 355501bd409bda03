package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/docverify/internal/core/ports/driven"
)

func TestGateway_SetsAuthAndContentType(t *testing.T) {
	var got *http.Request
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gw, err := NewGateway(srv.URL, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "T"}), time.Second)
	require.NoError(t, err)

	resp, err := gw.Send(context.Background(), driven.Request{
		Method: http.MethodPost,
		Path:   "/api/document",
		Header: http.Header{
			"Authorization": []string{"Basic abc"},
			"Content-Type":  []string{"text/plain"},
			"Accept":        []string{"application/json"},
		},
		Body: []byte(`{"k":"v"}`),
	})
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/document", got.URL.Path)
	assert.Equal(t, []string{"Bearer T"}, got.Header.Values("Authorization"))
	assert.Equal(t, []string{"application/json"}, got.Header.Values("Content-Type"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.JSONEq(t, `{"k":"v"}`, string(body))
}

func TestGateway_EmptyTokenStillSendsHeader(t *testing.T) {
	var auth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
	}))
	defer srv.Close()

	gw, err := NewGateway(srv.URL, oauth2.StaticTokenSource(&oauth2.Token{}), time.Second)
	require.NoError(t, err)

	resp, err := gw.Send(context.Background(), driven.Request{Method: http.MethodGet, Path: "/api/document/abc"})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer", auth.Load())
}

func TestGateway_ReturnsNon2xxOnce(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	gw, err := NewGateway(srv.URL, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "T"}), time.Second)
	require.NoError(t, err)

	resp, err := gw.Send(context.Background(), driven.Request{Method: http.MethodGet, Path: "/api/document/abc"})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGateway_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	gw, err := NewGateway(url, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "T"}), time.Second)
	require.NoError(t, err)

	resp, err := gw.Send(context.Background(), driven.Request{Method: http.MethodGet, Path: "/api/document/abc"})
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestGateway_ReadsTokenPerCall(t *testing.T) {
	var auths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
	}))
	defer srv.Close()

	src := &switchableSource{token: "first"}
	gw, err := NewGateway(srv.URL, src, time.Second)
	require.NoError(t, err)

	for _, tok := range []string{"first", "second"} {
		src.token = tok
		resp, err := gw.Send(context.Background(), driven.Request{Method: http.MethodGet, Path: "/x"})
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, []string{"Bearer first", "Bearer second"}, auths)
}

type switchableSource struct {
	token string
}

func (s *switchableSource) Token() (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: s.token}, nil
}

func TestGateway_URL(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"http://localhost:8000", "/api/document", "http://localhost:8000/api/document"},
		{"http://localhost:8000/", "/api/document", "http://localhost:8000/api/document"},
		{"https://example.com/extract", "/api/document/abc", "https://example.com/extract/api/document/abc"},
		{"https://example.com", "api/token", "https://example.com/api/token"},
		{"https://example.com", "/api/document/a%2Fb", "https://example.com/api/document/a%2Fb"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			gw, err := NewGateway(tt.base, oauth2.StaticTokenSource(&oauth2.Token{}), time.Second)
			require.NoError(t, err)
			assert.Equal(t, tt.want, gw.URL(tt.path))
		})
	}
}

func TestNewGateway_InvalidBaseURL(t *testing.T) {
	for _, base := range []string{"", "localhost:8000", "ftp://example.com", "http://"} {
		_, err := NewGateway(base, oauth2.StaticTokenSource(&oauth2.Token{}), time.Second)
		assert.ErrorIs(t, err, ErrInvalidBaseURL, base)
	}
}

func TestGateway_HonoursRetryAfterUpToMax(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderRetryAfter, "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	limiter := NewRateLimiter(0, WithMaxRetryAfter(100*time.Millisecond))
	gw, err := NewGateway(srv.URL, oauth2.StaticTokenSource(&oauth2.Token{}), time.Second, WithRateLimiter(limiter))
	require.NoError(t, err)

	resp, err := gw.Send(context.Background(), driven.Request{Method: http.MethodGet, Path: "/x"})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = gw.Send(ctx, driven.Request{Method: http.MethodGet, Path: "/x"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	start := time.Now()
	resp, err = gw.Send(context.Background(), driven.Request{Method: http.MethodGet, Path: "/x"})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Less(t, time.Since(start), time.Second)
}
