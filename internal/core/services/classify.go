package services

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

// outcome is the classification of one HTTP exchange.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeUnauthenticated
	outcomeFailed
)

func (o outcome) String() string {
	switch o {
	case outcomeSuccess:
		return "success"
	case outcomeUnauthenticated:
		return "unauthenticated"
	default:
		return "failed"
	}
}

// maxErrorBody bounds how much of a failed response is kept for logs.
const maxErrorBody = 512

// classify maps a gateway result to an outcome.
// Transport faults and every non-2xx status other than 401/403 are failed.
func classify(resp *http.Response, err error) outcome {
	if err != nil || resp == nil {
		return outcomeFailed
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return outcomeUnauthenticated
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return outcomeSuccess
	default:
		return outcomeFailed
	}
}

// failure converts a non-success outcome into a *domain.Failure for op.
// A failed outcome becomes kind failed. The response body is closed.
func failure(op string, o outcome, failed domain.FailureKind, resp *http.Response, err error) error {
	cause := err
	if cause == nil && resp != nil {
		cause = statusError(resp)
	}
	closeBody(resp)

	if o == outcomeUnauthenticated {
		return domain.NewFailure(op, domain.FailureUnauthenticated, cause)
	}
	return domain.NewFailure(op, failed, cause)
}

// statusError describes a non-2xx response.
func statusError(resp *http.Response) error {
	if resp.Body == nil {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	text := strings.TrimSpace(string(snippet))
	if text == "" {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, text)
}

// closeBody drains and closes a response body so the connection can be reused.
func closeBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
