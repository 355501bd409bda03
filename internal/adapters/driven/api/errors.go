package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidBaseURL indicates the configured base URL cannot be used.
var ErrInvalidBaseURL = errors.New("api: invalid base URL")

// APIError represents a non-2xx response from the extraction API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
	// Err is the domain error the response maps to, if any.
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap returns the mapped domain error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsRateLimited checks if the error is a 429 response.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}
