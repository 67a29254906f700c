package redis

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/topdonators/internal/config"
	"github.com/polkiloo/topdonators/internal/domain/repository"
)

// Module provides the leaderboard cache.
var Module = fx.Options(
	fx.Provide(newLeaderboardCache),
)

var newClient = func(cfg *config.Config) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

type cacheParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newLeaderboardCache(p cacheParams) repository.LeaderboardCache {
	if p.Config.RedisAddr == "" {
		p.Logger.Info("redis not configured, leaderboard cache disabled")
		return NoopCache{}
	}

	client := newClient(p.Config)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				// the leaderboard falls back to postgres on every miss
				p.Logger.Warn("redis unavailable", slog.String("addr", p.Config.RedisAddr), slog.Any("error", err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return NewCache(client, p.Config.LeaderboardTTL)
}
