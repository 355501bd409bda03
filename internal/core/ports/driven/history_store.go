package driven

import (
	"context"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

// HistoryStore records workflow events for submitted documents.
type HistoryStore interface {
	// Append records an entry.
	Append(ctx context.Context, entry domain.HistoryEntry) error

	// List returns entries newest first, at most limit (0 = all).
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// ListByDocument returns entries for one document, oldest first.
	ListByDocument(ctx context.Context, documentID string) ([]domain.HistoryEntry, error)
}
