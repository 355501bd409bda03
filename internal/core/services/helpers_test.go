package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/docverify/internal/core/ports/driven"
)

// fakeGateway answers requests from a script and records them.
type fakeGateway struct {
	mu       sync.Mutex
	requests []driven.Request
	respond  func(n int, req driven.Request) (*http.Response, error)
}

func (g *fakeGateway) Send(_ context.Context, req driven.Request) (*http.Response, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	n := len(g.requests)
	g.mu.Unlock()
	return g.respond(n, req)
}

func (g *fakeGateway) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

func (g *fakeGateway) last() driven.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests[len(g.requests)-1]
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func always(status int, body string) func(int, driven.Request) (*http.Response, error) {
	return func(int, driven.Request) (*http.Response, error) {
		return respond(status, body), nil
	}
}

var errConnRefused = errors.New("dial tcp: connection refused")

// recordingSleep counts waits without blocking.
type recordingSleep struct {
	mu     sync.Mutex
	waits  []time.Duration
	cancel context.CancelFunc
	after  int
}

func (s *recordingSleep) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.waits = append(s.waits, d)
	n := len(s.waits)
	s.mu.Unlock()
	if s.cancel != nil && n == s.after {
		s.cancel()
	}
	return ctx.Err()
}

func (s *recordingSleep) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.waits)
}

const (
	processingBody = `{"document_id":"abc","status":"processing"}`
	completeBody   = `{"document_id":"abc","status":"complete","document_key":"input/test.pdf",` +
		`"extracted_data":{"a":{"value":"x"},"b":{"value":"y","confidence":"80"}}}`
)
