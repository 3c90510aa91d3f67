package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client, 30*time.Minute)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return store, mr, cleanup
}

func TestRedisStore_LoadCreatesAndPersists(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	state, err := store.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 0, state.Cart.Len())
	assert.Empty(t, state.Ratings)

	stored, err := mr.Get(sessionKey("abc"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cart":{},"ratings":{}}`, stored)
	assert.Equal(t, 30*time.Minute, mr.TTL(sessionKey("abc")))
}

func TestRedisStore_LoadDoesNotOverwriteExisting(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(sessionKey("abc"), `{"cart":{"5":2,"1":1},"ratings":{"5":4}}`)

	state, err := store.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, []domain.CartItem{{ProductID: 5, Quantity: 2}, {ProductID: 1, Quantity: 1}}, state.Cart.Items())
	assert.Equal(t, 4, state.Ratings[5])
}

func TestRedisStore_LoadRefreshesTTL(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(sessionKey("abc"), `{"cart":{},"ratings":{}}`)
	mr.SetTTL(sessionKey("abc"), time.Minute)

	_, err := store.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, mr.TTL(sessionKey("abc")))
}

func TestRedisStore_SaveAndLoad(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	state := domain.NewSessionState()
	state.Cart.Set(2, 3)
	state.Cart.Set(1, 1)
	state.Ratings[2] = 5
	require.NoError(t, store.Save(ctx, "abc", state))

	stored, err := mr.Get(sessionKey("abc"))
	require.NoError(t, err)
	assert.Equal(t, `{"cart":{"2":3,"1":1},"ratings":{"2":5}}`, stored)

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, state.Cart.Items(), loaded.Cart.Items())
	assert.Equal(t, state.Ratings, loaded.Ratings)
}

func TestRedisStore_InvalidJSON(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(sessionKey("abc"), `{"cart":{"1":`)

	_, err := store.Load(context.Background(), "abc")
	require.ErrorContains(t, err, "unmarshal session state failed")
}

func TestRedisStore_Delete(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", domain.NewSessionState()))
	assert.True(t, mr.Exists(sessionKey("abc")))

	require.NoError(t, store.Delete(ctx, "abc"))
	assert.False(t, mr.Exists(sessionKey("abc")))

	// Deleting non-existent key should not error
	assert.NoError(t, store.Delete(ctx, "nonexistent"))
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Close()

	_, err := store.Load(context.Background(), "abc")
	assert.ErrorContains(t, err, "redis get failed")
}

func TestSessionKey_Format(t *testing.T) {
	assert.Equal(t, "session:test123", sessionKey("test123"))
}
