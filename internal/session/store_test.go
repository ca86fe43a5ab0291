package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(42), userID)

	// Each session gets its own token
	other, err := store.Create(ctx, 42)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestGetUnknownToken(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDestroy(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, token))
	_, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)

	// Destroying an already-absent session is not an error
	require.NoError(t, store.Destroy(ctx, token))
}

func TestSessionExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, 7)
	require.NoError(t, err)

	// Advance miniredis past the session TTL
	mr.FastForward(TTL + time.Minute)

	_, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok, "expired session must not resolve")
}
