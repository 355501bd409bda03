package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

func TestHistoryStore_List_NewestFirst(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	_ = store.Append(ctx, domain.HistoryEntry{ID: "1", DocumentID: "a", Event: domain.EventSubmitted, CreatedAt: base})
	_ = store.Append(ctx, domain.HistoryEntry{ID: "2", DocumentID: "a", Event: domain.EventCompleted, CreatedAt: base.Add(time.Minute)})
	_ = store.Append(ctx, domain.HistoryEntry{ID: "3", DocumentID: "b", Event: domain.EventSubmitted, CreatedAt: base.Add(2 * time.Minute)})

	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "3", entries[0].ID)
	assert.Equal(t, "1", entries[2].ID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestHistoryStore_ListByDocument(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	_ = store.Append(ctx, domain.HistoryEntry{ID: "1", DocumentID: "a", Event: domain.EventSubmitted})
	_ = store.Append(ctx, domain.HistoryEntry{ID: "2", DocumentID: "b", Event: domain.EventSubmitted})
	_ = store.Append(ctx, domain.HistoryEntry{ID: "3", DocumentID: "a", Event: domain.EventVerified})

	entries, err := store.ListByDocument(ctx, "a")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.EventSubmitted, entries[0].Event)
	assert.Equal(t, domain.EventVerified, entries[1].Event)
}
