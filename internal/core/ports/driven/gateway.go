package driven

import (
	"context"
	"net/http"
)

// Request describes one call to the extraction API.
// Path is resolved against the configured base URL.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Gateway sends authenticated requests to the extraction API.
//
// Implementations add the bearer credential and a JSON content type to
// every request, overriding caller headers for those keys. They perform
// exactly one attempt, never inspect the status code, and return non-2xx
// responses as-is. Only transport failures are returned as errors.
// Callers must close the response body.
type Gateway interface {
	Send(ctx context.Context, req Request) (*http.Response, error)
}
