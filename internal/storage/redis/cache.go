// Package redis keeps the leaderboard in Redis between credits.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/polkiloo/topdonators/internal/domain/model"
	"github.com/polkiloo/topdonators/internal/domain/repository"
)

// LeaderboardKey holds the JSON encoded top donors table.
const LeaderboardKey = "topdonators:leaderboard"

// Cache stores the leaderboard under a single key with a TTL.
type Cache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

var _ repository.LeaderboardCache = (*Cache)(nil)

// NewCache wraps a redis client.
func NewCache(client goredis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context) ([]model.LeaderboardEntry, bool, error) {
	data, err := c.client.Get(ctx, LeaderboardKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get leaderboard: %w", err)
	}

	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, fmt.Errorf("decode leaderboard: %w", err)
	}
	return entries, true, nil
}

func (c *Cache) Set(ctx context.Context, entries []model.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	if err := c.client.Set(ctx, LeaderboardKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set leaderboard: %w", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, LeaderboardKey).Err(); err != nil {
		return fmt.Errorf("invalidate leaderboard: %w", err)
	}
	return nil
}

// HealthCheck pings redis.
func (c *Cache) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

// NoopCache is used when no redis address is configured. Every read misses.
type NoopCache struct{}

var _ repository.LeaderboardCache = NoopCache{}

func (NoopCache) Get(context.Context) ([]model.LeaderboardEntry, bool, error) { return nil, false, nil }
func (NoopCache) Set(context.Context, []model.LeaderboardEntry) error         { return nil }
func (NoopCache) Invalidate(context.Context) error                            { return nil }
func (NoopCache) HealthCheck(context.Context) error                           { return nil }
