package handlers

import (
	"context"

	"github.com/polkiloo/topdonators/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// ProfileFacade reads and edits the current user.
type ProfileFacade interface {
	Profile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, change model.ProfileChange) (*model.User, error)
}

// DonationFacade covers checkout, leaderboard and provider notifications.
type DonationFacade interface {
	Checkout(ctx context.Context, userID, amount int64) (string, error)
	Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (model.WebhookOutcome, error)
}

// PasswordFacade provides password recovery.
type PasswordFacade interface {
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// HealthFacade reports readiness of backing services.
type HealthFacade interface {
	Ready(ctx context.Context) error
}

// Facade aggregates the full set of operations used across handlers.
type Facade interface {
	AuthFacade
	ProfileFacade
	DonationFacade
	PasswordFacade
	HealthFacade
}
