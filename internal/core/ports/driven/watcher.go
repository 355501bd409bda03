package driven

import "context"

// FileWatcher reports files that appear in a directory tree.
type FileWatcher interface {
	// Watch emits paths of new or rewritten files until ctx is cancelled.
	// Both channels are closed when watching stops.
	Watch(ctx context.Context, root string) (<-chan string, <-chan error, error)
}
