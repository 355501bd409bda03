package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
)

// Session keys.
//
//nolint:gosec // G101: key names, not credentials.
const (
	SessionKeyAuthToken    = "auth_token"
	SessionKeyDocumentID   = "documentId"
	SessionKeyVerifiedData = "verifiedData"
)

// sessionState reads and writes the typed values kept in the session store.
type sessionState struct {
	store driven.SessionStore
}

func (s sessionState) documentID(ctx context.Context) (string, error) {
	id, ok, err := s.store.Get(ctx, SessionKeyDocumentID)
	if err != nil {
		return "", fmt.Errorf("read document id: %w", err)
	}
	if !ok || id == "" {
		return "", domain.ErrNoDocument
	}
	return id, nil
}

func (s sessionState) setDocumentID(ctx context.Context, id string) error {
	if err := s.store.Set(ctx, SessionKeyDocumentID, id); err != nil {
		return fmt.Errorf("store document id: %w", err)
	}
	// A new document invalidates the previous verification.
	if err := s.store.Delete(ctx, SessionKeyVerifiedData); err != nil {
		return fmt.Errorf("clear verified data: %w", err)
	}
	return nil
}

func (s sessionState) verifiedRecord(ctx context.Context) (*domain.VerifiedRecord, error) {
	raw, ok, err := s.store.Get(ctx, SessionKeyVerifiedData)
	if err != nil {
		return nil, fmt.Errorf("read verified data: %w", err)
	}
	if !ok || raw == "" {
		return nil, domain.ErrNoVerifiedData
	}
	var record domain.VerifiedRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("decode verified data: %w", err)
	}
	return &record, nil
}

func (s sessionState) setVerifiedRecord(ctx context.Context, record *domain.VerifiedRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode verified data: %w", err)
	}
	if err := s.store.Set(ctx, SessionKeyVerifiedData, string(data)); err != nil {
		return fmt.Errorf("store verified data: %w", err)
	}
	return nil
}
