package usecase

import (
	"context"
	"log/slog"

	"github.com/polkiloo/topdonators/internal/domain/model"
	"github.com/polkiloo/topdonators/internal/domain/repository"
	pkgAuth "github.com/polkiloo/topdonators/internal/pkg/auth"
)

// ProfileUseCase reads and edits the authenticated user's profile.
type ProfileUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	cache  repository.LeaderboardCache
	logger *slog.Logger
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, cache repository.LeaderboardCache, logger *slog.Logger) *ProfileUseCase {
	return &ProfileUseCase{users: users, hasher: hasher, cache: cache, logger: logger}
}

// Get returns the user with their current standing.
func (u *ProfileUseCase) Get(ctx context.Context, userID int64) (*model.User, error) {
	return u.users.GetByID(ctx, userID)
}

// Update validates and applies a profile edit. Taken usernames or emails
// surface as ErrAlreadyExists.
func (u *ProfileUseCase) Update(ctx context.Context, userID int64, change model.ProfileChange) (*model.User, error) {
	var update model.ProfileUpdate

	if change.Username != nil {
		username, err := NormalizeUsername(*change.Username)
		if err != nil {
			return nil, err
		}
		update.Username = &username
	}
	if change.Email != nil {
		email, err := NormalizeEmail(*change.Email)
		if err != nil {
			return nil, err
		}
		update.Email = &email
	}
	if change.Password != nil {
		hash, err := hashPassword(u.hasher, *change.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hash
	}

	usr, err := u.users.Update(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	// usernames are rendered on the leaderboard
	if update.Username != nil {
		if err := u.cache.Invalidate(ctx); err != nil {
			u.logger.Warn("leaderboard cache invalidation failed", slog.String("error", err.Error()))
		}
	}
	return usr, nil
}
