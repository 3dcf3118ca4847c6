package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_Remember(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	t.Run("claims an unseen key", func(t *testing.T) {
		claimed, value, err := store.Remember(ctx, "key-1", "payment-a", time.Hour)
		require.NoError(t, err)
		assert.True(t, claimed)
		assert.Equal(t, "payment-a", value)
	})

	t.Run("returns the stored value for a seen key", func(t *testing.T) {
		claimed, value, err := store.Remember(ctx, "key-1", "payment-b", time.Hour)
		require.NoError(t, err)
		assert.False(t, claimed)
		assert.Equal(t, "payment-a", value)
	})

	t.Run("expired keys can be claimed again", func(t *testing.T) {
		claimed, _, err := store.Remember(ctx, "key-2", "payment-c", time.Nanosecond)
		require.NoError(t, err)
		require.True(t, claimed)

		time.Sleep(5 * time.Millisecond)

		claimed, value, err := store.Remember(ctx, "key-2", "payment-d", time.Hour)
		require.NoError(t, err)
		assert.True(t, claimed)
		assert.Equal(t, "payment-d", value)
	})
}

func TestInMemoryIdempotencyStore_Forget(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	claimed, _, err := store.Remember(ctx, "key-1", "payment-a", time.Hour)
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, store.Forget(ctx, "key-1"))

	claimed, value, err := store.Remember(ctx, "key-1", "payment-b", time.Hour)
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Equal(t, "payment-b", value)
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	_, _, err := store.Remember(ctx, "expired", "x", time.Nanosecond)
	require.NoError(t, err)
	_, _, err = store.Remember(ctx, "live", "y", time.Hour)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	store.cleanup()

	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
