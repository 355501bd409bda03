package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_SetGet(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "documentId", "abc"))

	val, ok, err := store.Get(ctx, "documentId")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", val)
}

func TestSessionStore_Get_Missing(t *testing.T) {
	store := NewSessionStore()

	val, ok, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, val)
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	_ = store.Set(ctx, "a", "1")

	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "missing"))

	_, ok, _ := store.Get(ctx, "a")
	assert.False(t, ok)
}

func TestSessionStore_Clear(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	_ = store.Set(ctx, "auth_token", "tok")
	_ = store.Set(ctx, "documentId", "abc")

	require.NoError(t, store.Clear(ctx))

	assert.Empty(t, store.values)
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set(ctx, "k", "v")
			_, _, _ = store.Get(ctx, "k")
			_ = store.Delete(ctx, "k")
		}()
	}
	wg.Wait()
}
