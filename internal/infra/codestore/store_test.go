package codestore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStore(client, ttl), mr
}

func TestStore_PutAndTake(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", "483920"))

	code, err := store.Take(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "483920", code)
}

func TestStore_TakeIsSingleUse(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", "483920"))

	_, err := store.Take(ctx, "user-1")
	require.NoError(t, err)

	_, err = store.Take(ctx, "user-1")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestStore_TakeMissing(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)

	_, err := store.Take(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestStore_PutOverwritesPreviousCode(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", "111111"))
	require.NoError(t, store.Put(ctx, "user-1", "222222"))

	code, err := store.Take(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "222222", code)
}

func TestStore_CodeExpires(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", "483920"))

	mr.FastForward(2 * time.Minute)

	_, err := store.Take(ctx, "user-1")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestStore_KeysAreScopedPerUser(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", "111111"))
	require.NoError(t, store.Put(ctx, "user-2", "222222"))

	code, err := store.Take(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "111111", code)

	code, err = store.Take(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, "222222", code)
}
