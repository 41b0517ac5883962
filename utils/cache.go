package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = time.Hour

// Cache keys.
const (
	CacheKeyPostList    = "cache:posts:list:"
	CacheKeyPostDetail  = "cache:post:detail:"
	CacheKeyFolderList  = "cache:folders:list"
	CacheKeyFolderPages = "cache:folder:detail:"
)

// Cache stores rendered JSON responses in Redis. A nil *Cache, or one without
// a client, is a valid no-op cache.
type Cache struct {
	rc  *redis.Client
	ttl time.Duration
}

// NewCache wraps rc. A non-positive ttl selects the default of one hour.
func NewCache(rc *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{rc: rc, ttl: ttl}
}

// GetBytes returns cached bytes for a key.
func (c *Cache) GetBytes(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rc == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	b, err := c.rc.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			Sugar.Debugw("cache get failed", "key", key, "err", err)
		}
		return nil, false
	}
	return b, true
}

// SetJSON marshals v and stores it under key.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) {
	if c == nil || c.rc == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.rc.Set(ctx, key, b, c.ttl).Err(); err != nil {
		Sugar.Warnw("cache set failed", "key", key, "err", err)
	}
}

// InvalidateByPrefix deletes keys that match the given prefix using SCAN.
func (c *Cache) InvalidateByPrefix(ctx context.Context, prefixes ...string) {
	if c == nil || c.rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	for _, prefix := range prefixes {
		var cursor uint64
		for i := 0; i < 10; i++ { // limit rounds to avoid long loops
			keys, cur, err := c.rc.Scan(ctx, cursor, prefix+"*", 1000).Result()
			if err != nil {
				Sugar.Warnw("cache scan failed", "prefix", prefix, "err", err)
				break
			}
			cursor = cur
			if len(keys) > 0 {
				pipe := c.rc.Pipeline()
				for _, k := range keys {
					pipe.Del(ctx, k)
				}
				_, _ = pipe.Exec(ctx)
			}
			if cursor == 0 {
				break
			}
		}
	}
}
