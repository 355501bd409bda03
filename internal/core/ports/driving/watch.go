package driving

import (
	"context"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

// WatchResult is the outcome for one file picked up by the watcher.
type WatchResult struct {
	Path       string
	DocumentID string
	Job        *domain.DocumentJob
	Err        error
}

// WatchService submits files dropped into a directory and awaits extraction.
type WatchService interface {
	// Run blocks until ctx is cancelled, reporting each processed file.
	// Files are processed one at a time.
	Run(ctx context.Context, root string, report func(WatchResult)) error
}
