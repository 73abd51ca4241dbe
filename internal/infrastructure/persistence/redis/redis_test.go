package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "session:u-1", sessionKey("u-1"))
	assert.Equal(t, "search:розетка", searchKey("  Розетка "))

	k1 := blacklistKey("token-a")
	assert.Equal(t, k1, blacklistKey("token-a"))
	assert.NotEqual(t, k1, blacklistKey("token-b"))
	assert.Len(t, k1, len("blacklist:")+64)
}

// 需要本地Redis：GYPSUM_TEST_REDIS_ADDR=localhost:6379
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("GYPSUM_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("未设置GYPSUM_TEST_REDIS_ADDR")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		_ = client.Close()
	})
	return client
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(newTestClient(t))

	require.NoError(t, store.SaveSession(ctx, "u-1", map[string]interface{}{"email": "a@example.com"}, time.Minute))
	session, err := store.GetSession(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", session["email"])

	require.NoError(t, store.DeleteSession(ctx, "u-1"))
	_, err = store.GetSession(ctx, "u-1")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	require.NoError(t, store.AddToBlacklist(ctx, "tok", time.Minute))
	revoked, err := store.IsInBlacklist(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsInBlacklist(ctx, "other")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSearchCache(t *testing.T) {
	ctx := context.Background()
	cache := NewSearchCache(newTestClient(t), time.Minute)

	_, ok, err := cache.Get(ctx, "корниз")
	require.NoError(t, err)
	assert.False(t, ok)

	products := []*catalog.Product{{ID: "p-1", Name: "Корниз", Price: decimal.RequireFromString("12.50"), Images: []string{}}}
	require.NoError(t, cache.Set(ctx, "Корниз", products))

	got, ok, err := cache.Get(ctx, "корниз")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.True(t, decimal.RequireFromString("12.50").Equal(got[0].Price))

	require.NoError(t, cache.Invalidate(ctx))
	_, ok, err = cache.Get(ctx, "корниз")
	require.NoError(t, err)
	assert.False(t, ok)
}
