package driven

// ResponseValidator checks raw API response bodies against their expected shape.
type ResponseValidator interface {
	// ValidateDocument validates a poll response body.
	// Returns an error wrapping domain.ErrMalformedResponse on mismatch.
	ValidateDocument(body []byte) error
}
