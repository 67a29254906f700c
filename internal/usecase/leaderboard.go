package usecase

import (
	"context"
	"log/slog"

	"github.com/polkiloo/topdonators/internal/domain/model"
	"github.com/polkiloo/topdonators/internal/domain/repository"
)

// LeaderboardUseCase serves the top donors table, cached when possible.
type LeaderboardUseCase struct {
	users  repository.UserRepository
	cache  repository.LeaderboardCache
	size   int
	logger *slog.Logger
}

// NewLeaderboardUseCase constructs LeaderboardUseCase.
func NewLeaderboardUseCase(users repository.UserRepository, cache repository.LeaderboardCache, size int, logger *slog.Logger) *LeaderboardUseCase {
	if size <= 0 {
		size = 10
	}
	return &LeaderboardUseCase{users: users, cache: cache, size: size, logger: logger}
}

// Top returns donors ordered by cumulative amount. Cache failures fall through
// to the database.
func (u *LeaderboardUseCase) Top(ctx context.Context) ([]model.LeaderboardEntry, error) {
	entries, ok, err := u.cache.Get(ctx)
	if err != nil {
		u.logger.Warn("leaderboard cache read failed", slog.String("error", err.Error()))
	}
	if ok {
		return entries, nil
	}

	entries, err = u.users.Top(ctx, u.size)
	if err != nil {
		return nil, err
	}
	if err := u.cache.Set(ctx, entries); err != nil {
		u.logger.Warn("leaderboard cache write failed", slog.String("error", err.Error()))
	}
	return entries, nil
}
