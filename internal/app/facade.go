package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/polkiloo/topdonators/internal/domain/model"
	"github.com/polkiloo/topdonators/internal/usecase"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// DonationFacade is the single entry point the HTTP layer and the worker use.
type DonationFacade struct {
	auth        *usecase.AuthUseCase
	donations   *usecase.DonationUseCase
	checkouts   *usecase.CheckoutUseCase
	leaderboard *usecase.LeaderboardUseCase
	profiles    *usecase.ProfileUseCase
	resets      *usecase.PasswordResetUseCase
	probes      map[string]HealthChecker
}

// UseCases groups the use cases behind the facade.
type UseCases struct {
	Auth          *usecase.AuthUseCase
	Donations     *usecase.DonationUseCase
	Checkouts     *usecase.CheckoutUseCase
	Leaderboard   *usecase.LeaderboardUseCase
	Profiles      *usecase.ProfileUseCase
	PasswordReset *usecase.PasswordResetUseCase
}

func NewDonationFacade(uc UseCases, probes map[string]HealthChecker) *DonationFacade {
	return &DonationFacade{
		auth:        uc.Auth,
		donations:   uc.Donations,
		checkouts:   uc.Checkouts,
		leaderboard: uc.Leaderboard,
		profiles:    uc.Profiles,
		resets:      uc.PasswordReset,
		probes:      probes,
	}
}

func (f *DonationFacade) Register(ctx context.Context, username, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, username, email, password)
	return token, err
}

func (f *DonationFacade) Authenticate(ctx context.Context, username, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, username, password)
	return token, err
}

func (f *DonationFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *DonationFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.profiles.Get(ctx, userID)
}

func (f *DonationFacade) UpdateProfile(ctx context.Context, userID int64, change model.ProfileChange) (*model.User, error) {
	return f.profiles.Update(ctx, userID, change)
}

func (f *DonationFacade) Checkout(ctx context.Context, userID, amount int64) (string, error) {
	return f.checkouts.Create(ctx, userID, amount)
}

func (f *DonationFacade) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return f.leaderboard.Top(ctx)
}

func (f *DonationFacade) HandleWebhook(ctx context.Context, payload []byte, signature string) (model.WebhookOutcome, error) {
	return f.donations.HandleWebhook(ctx, payload, signature)
}

func (f *DonationFacade) RequestPasswordReset(ctx context.Context, email string) error {
	return f.resets.RequestReset(ctx, email)
}

func (f *DonationFacade) ResetPassword(ctx context.Context, token, password string) error {
	return f.resets.ResetPassword(ctx, token, password)
}

// Ready pings every registered backing service.
func (f *DonationFacade) Ready(ctx context.Context) error {
	var errs []error
	for name, probe := range f.probes {
		if err := probe.HealthCheck(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (f *DonationFacade) PendingCheckouts(ctx context.Context, limit int) ([]model.Checkout, error) {
	return f.checkouts.Pending(ctx, limit)
}

func (f *DonationFacade) FetchCheckout(ctx context.Context, sessionID string) (*model.Checkout, error) {
	return f.checkouts.Fetch(ctx, sessionID)
}

func (f *DonationFacade) SettleCheckout(ctx context.Context, payment model.Payment) (model.WebhookOutcome, error) {
	outcome, _, err := f.donations.Settle(ctx, payment)
	return outcome, err
}

func (f *DonationFacade) ExpireCheckout(ctx context.Context, sessionID string) error {
	return f.checkouts.MarkExpired(ctx, sessionID)
}
