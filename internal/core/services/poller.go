package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
	"github.com/custodia-labs/docverify/internal/logger"
)

// maxJobBody bounds a poll response. Preview payloads can be large.
const maxJobBody = 64 << 20

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Poller waits for a submitted document to finish extraction.
//
// A Poller runs one loop at a time per call; attempts within a call are
// strictly sequential.
type Poller struct {
	gw          driven.Gateway
	validator   driven.ResponseValidator
	maxAttempts int
	delay       time.Duration
	sleep       SleepFunc
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithValidator validates each 2xx body before decoding.
func WithValidator(v driven.ResponseValidator) PollerOption {
	return func(p *Poller) { p.validator = v }
}

// WithSleep replaces the wait between attempts.
func WithSleep(fn SleepFunc) PollerOption {
	return func(p *Poller) { p.sleep = fn }
}

// NewPoller creates a poller. A non-positive attempt count or negative delay
// falls back to the default.
func NewPoller(gw driven.Gateway, settings domain.PollSettings, opts ...PollerOption) *Poller {
	p := &Poller{
		gw:          gw,
		maxAttempts: settings.MaxAttempts,
		delay:       settings.Delay,
		sleep:       sleepContext,
	}
	if p.maxAttempts <= 0 {
		p.maxAttempts = domain.DefaultMaxAttempts
	}
	if p.delay < 0 {
		p.delay = domain.DefaultPollDelay
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll requests the document until it is complete.
//
// It returns the full job on completion, FailureUnauthenticated as soon as
// the server answers 401/403, FailureCancelled when ctx ends and
// FailureTimeout when every attempt is used. Any other failed attempt is
// retried after the delay; individual attempt errors are only logged.
func (p *Poller) Poll(ctx context.Context, documentID string) (*domain.DocumentJob, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: empty document id", domain.ErrInvalidInput)
	}
	path := documentPath + "/" + url.PathEscape(documentID)

	logger.Section("Poll " + documentID)

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, domain.NewFailure(domain.OpPoll, domain.FailureCancelled, err)
		}

		job, o, err := p.attempt(ctx, path)
		switch o {
		case outcomeSuccess:
			if job.Status.IsComplete() {
				logger.Debug("attempt %d/%d: complete", attempt, p.maxAttempts)
				return job, nil
			}
			logger.Debug("attempt %d/%d: status %q", attempt, p.maxAttempts, job.Status)
		case outcomeUnauthenticated:
			logger.Warn("poll %s: credential rejected", documentID)
			return nil, domain.NewFailure(domain.OpPoll, domain.FailureUnauthenticated, err)
		default:
			logger.Debug("attempt %d/%d failed: %v", attempt, p.maxAttempts, err)
		}

		if err := p.sleep(ctx, p.delay); err != nil {
			return nil, domain.NewFailure(domain.OpPoll, domain.FailureCancelled, err)
		}
	}

	logger.Warn("poll %s: no result after %d attempts", documentID, p.maxAttempts)
	return nil, domain.NewFailure(domain.OpPoll, domain.FailureTimeout,
		fmt.Errorf("%d attempts", p.maxAttempts))
}

// attempt performs one GET. A 2xx with an undecodable or invalid body is failed.
func (p *Poller) attempt(ctx context.Context, path string) (*domain.DocumentJob, outcome, error) {
	resp, err := p.gw.Send(ctx, driven.Request{
		Method: http.MethodGet,
		Path:   path,
		Header: http.Header{"Accept": []string{"application/json"}},
	})
	o := classify(resp, err)
	if o != outcomeSuccess {
		if err == nil {
			err = statusError(resp)
		}
		closeBody(resp)
		return nil, o, err
	}
	defer closeBody(resp)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJobBody))
	if err != nil {
		return nil, outcomeFailed, err
	}
	if p.validator != nil {
		if err := p.validator.ValidateDocument(body); err != nil {
			return nil, outcomeFailed, err
		}
	}

	var job domain.DocumentJob
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, outcomeFailed, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	return &job, outcomeSuccess, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
