package repository

import (
	"context"

	"github.com/polkiloo/topdonators/internal/domain/model"
)

// LeaderboardCache keeps a rendered copy of the top donors table.
type LeaderboardCache interface {
	// Get returns the cached table. ok is false on a miss.
	Get(ctx context.Context) (entries []model.LeaderboardEntry, ok bool, err error)
	Set(ctx context.Context, entries []model.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}
