package services

import (
	"context"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads the local workflow history.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a new history service. store may be nil.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns entries newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if s.store == nil {
		return nil, nil
	}
	if limit < 0 {
		limit = 0
	}
	return s.store.List(ctx, limit)
}

// Document returns the events for one document, oldest first.
func (s *HistoryService) Document(ctx context.Context, documentID string) ([]domain.HistoryEntry, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.ListByDocument(ctx, documentID)
}
