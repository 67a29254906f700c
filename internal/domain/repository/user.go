package repository

import (
	"context"

	"github.com/polkiloo/topdonators/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, username, email, passwordHash string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, id int64, update model.ProfileUpdate) (*model.User, error)
	Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}
