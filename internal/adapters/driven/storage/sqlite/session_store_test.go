package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_SetGet(t *testing.T) {
	sessions := setupTestStore(t).SessionStore()
	ctx := context.Background()

	require.NoError(t, sessions.Set(ctx, "documentId", "abc"))
	require.NoError(t, sessions.Set(ctx, "documentId", "def"))

	val, ok, err := sessions.Get(ctx, "documentId")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "def", val)
}

func TestSessionStore_Get_Missing(t *testing.T) {
	sessions := setupTestStore(t).SessionStore()

	val, ok, err := sessions.Get(context.Background(), "auth_token")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, val)
}

func TestSessionStore_DeleteAndClear(t *testing.T) {
	sessions := setupTestStore(t).SessionStore()
	ctx := context.Background()

	_ = sessions.Set(ctx, "auth_token", "tok")
	_ = sessions.Set(ctx, "documentId", "abc")
	_ = sessions.Set(ctx, "verifiedData", `{"extracted_data":{}}`)

	require.NoError(t, sessions.Delete(ctx, "documentId"))
	_, ok, _ := sessions.Get(ctx, "documentId")
	assert.False(t, ok)

	require.NoError(t, sessions.Clear(ctx))
	for _, key := range []string{"auth_token", "verifiedData"} {
		_, ok, _ := sessions.Get(ctx, key)
		assert.False(t, ok, key)
	}
}

func TestSessionStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.SessionStore().Set(ctx, "auth_token", "tok"))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	val, ok, err := second.SessionStore().Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", val)
}
