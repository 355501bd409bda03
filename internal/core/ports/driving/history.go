package driving

import (
	"context"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

// HistoryService exposes the local record of workflow events.
type HistoryService interface {
	// List returns entries newest first, at most limit (0 = all).
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Document returns the events for one document, oldest first.
	Document(ctx context.Context, documentID string) ([]domain.HistoryEntry, error)
}
