// Package cache holds the per-user item-list cache backed by Redis. The
// cache is strictly optional: a nil client disables it and every method
// becomes a no-op, so the rest of the app never branches on its presence.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

const itemsTTL = 5 * time.Minute

// ItemsCache caches the rendered /api/items payload per user.
type ItemsCache struct {
	client *redis.Client
}

// NewItemsCache creates an ItemsCache over the given client, which may be
// nil to disable caching.
func NewItemsCache(client *redis.Client) *ItemsCache {
	return &ItemsCache{client: client}
}

func itemsKey(userID int64) string {
	return fmt.Sprintf("items:user:%d", userID)
}

// Get returns the cached payload for the user, or ok=false on a miss or
// when caching is disabled.
func (c *ItemsCache) Get(ctx context.Context, userID int64) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, itemsKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("items cache read failed", "error", err)
		}
		return nil, false
	}
	return data, true
}

// Set stores the payload for the user. Failures are logged and swallowed;
// the cache must never fail a request.
func (c *ItemsCache) Set(ctx context.Context, userID int64, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, itemsKey(userID), payload, itemsTTL).Err(); err != nil {
		slog.Warn("items cache write failed", "error", err)
	}
}

// Invalidate drops the user's cached payload. Called on every item write.
func (c *ItemsCache) Invalidate(ctx context.Context, userID int64) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, itemsKey(userID)).Err(); err != nil {
		slog.Warn("items cache invalidation failed", "error", err)
	}
}
