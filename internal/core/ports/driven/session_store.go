package driven

import "context"

// SessionStore persists session-scoped key/value state.
// All keys are removed together when the session ends.
type SessionStore interface {
	// Get returns the value for key. Returns "", false if absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every key.
	Clear(ctx context.Context) error
}
