package redis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/topdonators/internal/config"
	"github.com/polkiloo/topdonators/internal/domain/model"
)

// fakeRedis keeps a single in-memory map and fails every command when err is set.
type fakeRedis struct {
	goredis.Cmdable

	values  map[string]string
	ttls    map[string]time.Duration
	err     error
	pingErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	f.values[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	if f.err != nil {
		return goredis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", f.pingErr)
}

func TestCacheRoundTrip(t *testing.T) {
	fake := newFakeRedis()
	cache := NewCache(fake, 30*time.Second)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	donatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []model.LeaderboardEntry{
		{Rank: 1, UserID: 2, Username: "bob", Amount: 900, Level: "Elite-0", LastDonationAt: &donatedAt},
		{Rank: 2, UserID: 1, Username: "alice", Amount: 60, Level: "F1"},
	}
	require.NoError(t, cache.Set(ctx, entries))
	assert.Equal(t, 30*time.Second, fake.ttls[LeaderboardKey])

	got, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "bob", got[0].Username)
	assert.True(t, got[0].LastDonationAt.Equal(donatedAt))
	assert.Nil(t, got[1].LastDonationAt)

	require.NoError(t, cache.Invalidate(ctx))
	_, ok, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheErrors(t *testing.T) {
	fake := newFakeRedis()
	fake.err = errors.New("connection refused")
	cache := NewCache(fake, time.Second)
	ctx := context.Background()

	_, _, err := cache.Get(ctx)
	assert.ErrorIs(t, err, fake.err)
	assert.ErrorIs(t, cache.Set(ctx, nil), fake.err)
	assert.ErrorIs(t, cache.Invalidate(ctx), fake.err)
}

func TestCacheCorruptValue(t *testing.T) {
	fake := newFakeRedis()
	fake.values[LeaderboardKey] = "{not json"
	cache := NewCache(fake, time.Second)

	_, ok, err := cache.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCacheHealthCheck(t *testing.T) {
	fake := newFakeRedis()
	cache := NewCache(fake, time.Second)
	assert.NoError(t, cache.HealthCheck(context.Background()))

	fake.pingErr = errors.New("down")
	assert.Error(t, cache.HealthCheck(context.Background()))
}

func TestNoopCache(t *testing.T) {
	var cache NoopCache
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, []model.LeaderboardEntry{{Rank: 1}}))
	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, cache.Invalidate(ctx))
	assert.NoError(t, cache.HealthCheck(ctx))
}

func TestNewLeaderboardCache(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("disabled without address", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)
		cache := newLeaderboardCache(cacheParams{Lifecycle: lc, Config: &config.Config{}, Logger: logger})
		assert.IsType(t, NoopCache{}, cache)
	})

	t.Run("redis backed", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)
		cfg := &config.Config{RedisAddr: "127.0.0.1:6379", LeaderboardTTL: time.Minute}
		cache := newLeaderboardCache(cacheParams{Lifecycle: lc, Config: cfg, Logger: logger})
		c, ok := cache.(*Cache)
		require.True(t, ok)
		assert.Equal(t, time.Minute, c.ttl)
	})
}
