package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docverify/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docverify/internal/core/domain"
)

type mockHistory struct {
	entries []domain.HistoryEntry
	err     error
	limit   int
}

func (m *mockHistory) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.limit = limit
	return m.entries, m.err
}

func (m *mockHistory) Document(context.Context, string) ([]domain.HistoryEntry, error) {
	return nil, nil
}

func TestView_Loads(t *testing.T) {
	h := &mockHistory{entries: []domain.HistoryEntry{
		{ID: "1", DocumentID: "abc", FileName: "scan.pdf", Event: domain.EventSubmitted, CreatedAt: time.Now()},
	}}
	v := NewView(nil, h)
	v.SetDimensions(120, 30)

	cmd := v.Init()
	require.NotNil(t, cmd)
	assert.Contains(t, v.View(), "Loading...")

	v.Update(cmd())

	assert.Equal(t, Limit, h.limit)
	assert.Len(t, v.Entries(), 1)
	assert.Contains(t, v.View(), "scan.pdf")
}

func TestView_LoadError(t *testing.T) {
	v := NewView(nil, &mockHistory{})

	v.Update(messages.HistoryLoaded{Err: errors.New("database is locked")})

	assert.Contains(t, v.View(), "database is locked")
}

func TestView_NilService(t *testing.T) {
	v := NewView(nil, nil)

	assert.Nil(t, v.Init())
	assert.Contains(t, v.View(), "not available")
}
