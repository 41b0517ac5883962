package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetInvalidate(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	ctx := context.Background()
	c := NewCache(rc, time.Minute)

	c.SetJSON(ctx, CacheKeyPostList+"all", []int{1, 2})
	c.SetJSON(ctx, CacheKeyPostDetail+"7", map[string]int{"id": 7})
	c.SetJSON(ctx, CacheKeyFolderList, []string{})

	b, ok := c.GetBytes(ctx, CacheKeyPostList+"all")
	require.True(t, ok)
	assert.JSONEq(t, `[1,2]`, string(b))
	assert.Equal(t, time.Minute, mr.TTL(CacheKeyPostList+"all"))

	c.InvalidateByPrefix(ctx, CacheKeyPostList, CacheKeyPostDetail)

	_, ok = c.GetBytes(ctx, CacheKeyPostList+"all")
	assert.False(t, ok)
	_, ok = c.GetBytes(ctx, CacheKeyPostDetail+"7")
	assert.False(t, ok)
	_, ok = c.GetBytes(ctx, CacheKeyFolderList)
	assert.True(t, ok)
}

func TestCache_NilIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	c.SetJSON(ctx, "k", 1)
	c.InvalidateByPrefix(ctx, "k")
	_, ok := c.GetBytes(ctx, "k")
	assert.False(t, ok)

	_, ok = NewCache(nil, 0).GetBytes(ctx, "k")
	assert.False(t, ok)
}
