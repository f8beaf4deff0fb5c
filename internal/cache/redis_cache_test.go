package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Title string `json:"title"`
}

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(rdb), mr
}

func TestRedisCache_MissThenHit(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	var got entry
	hit, err := c.GetJSON(ctx, KeyCurrentAbout, &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetJSON(ctx, KeyCurrentAbout, entry{Title: "Dev"}, time.Minute))
	assert.True(t, mr.Exists("folio:cache:about:current"))
	assert.Equal(t, time.Minute, mr.TTL("folio:cache:about:current"))

	hit, err = c.GetJSON(ctx, KeyCurrentAbout, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "Dev", got.Title)

	mr.FastForward(2 * time.Minute)
	hit, err = c.GetJSON(ctx, KeyCurrentAbout, &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_CorruptEntryIsDropped(t *testing.T) {
	c, mr := newRedisCache(t)
	require.NoError(t, mr.Set("folio:cache:profile:active", "{not json"))

	var got entry
	hit, err := c.GetJSON(context.Background(), KeyActiveProfile, &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, mr.Exists("folio:cache:profile:active"))
}

func TestRedisCache_Del(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, KeyCurrentAbout, entry{Title: "a"}, time.Minute))
	require.NoError(t, c.SetJSON(ctx, KeyActiveProfile, entry{Title: "p"}, time.Minute))
	require.NoError(t, mr.Set("about:current", "unprefixed"))

	require.NoError(t, c.Del(ctx))
	require.NoError(t, c.Del(ctx, KeyCurrentAbout, KeyActiveProfile))

	assert.False(t, mr.Exists("folio:cache:about:current"))
	assert.False(t, mr.Exists("folio:cache:profile:active"))
	// keys outside the prefix are left alone
	assert.True(t, mr.Exists("about:current"))
}

func TestRedisCache_ServerDown(t *testing.T) {
	c, mr := newRedisCache(t)
	mr.Close()

	var got entry
	_, err := c.GetJSON(context.Background(), KeyCurrentAbout, &got)
	assert.Error(t, err)
	assert.Error(t, c.SetJSON(context.Background(), KeyCurrentAbout, entry{}, time.Minute))
}
