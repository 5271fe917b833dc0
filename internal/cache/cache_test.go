package cache

import (
	"context"
	"testing"

	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestItemsCache_DisabledIsNoOp(t *testing.T) {
	ctx := context.Background()

	for _, c := range []*ItemsCache{nil, NewItemsCache(nil)} {
		if _, ok := c.Get(ctx, 1); ok {
			t.Fatal("disabled cache must always miss")
		}
		// Writes and invalidations must not panic either.
		c.Set(ctx, 1, []byte("payload"))
		c.Invalidate(ctx, 1)
	}
}

func TestItemsCache_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: endpoint})
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { client.Close() })

	itemsCache := NewItemsCache(client)

	_, ok := itemsCache.Get(ctx, 1)
	require.False(t, ok, "fresh cache must miss")

	payload := []byte(`{"username":"alice","item_count":2}`)
	itemsCache.Set(ctx, 1, payload)

	got, ok := itemsCache.Get(ctx, 1)
	require.True(t, ok)
	require.Equal(t, payload, got)

	// Another user's entry is independent.
	_, ok = itemsCache.Get(ctx, 2)
	require.False(t, ok)

	itemsCache.Invalidate(ctx, 1)
	_, ok = itemsCache.Get(ctx, 1)
	require.False(t, ok, "invalidated entry must miss")
}
