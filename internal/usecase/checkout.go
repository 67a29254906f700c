package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	"github.com/polkiloo/topdonators/internal/domain/model"
	"github.com/polkiloo/topdonators/internal/domain/repository"
)

// CheckoutProvider opens and reads provider hosted payment sessions.
type CheckoutProvider interface {
	Create(ctx context.Context, req model.CheckoutRequest) (*model.Checkout, error)
	Fetch(ctx context.Context, sessionID string) (*model.Checkout, error)
}

// CheckoutUseCase manages payment sessions opened by donors.
type CheckoutUseCase struct {
	provider       CheckoutProvider
	checkouts      repository.CheckoutRepository
	users          repository.UserRepository
	reconcileAfter time.Duration
}

// NewCheckoutUseCase constructs CheckoutUseCase. Sessions younger than
// reconcileAfter are left to the webhook.
func NewCheckoutUseCase(provider CheckoutProvider, checkouts repository.CheckoutRepository, users repository.UserRepository, reconcileAfter time.Duration) *CheckoutUseCase {
	return &CheckoutUseCase{provider: provider, checkouts: checkouts, users: users, reconcileAfter: reconcileAfter}
}

// Create opens a payment session for amount whole currency units and returns its URL.
func (u *CheckoutUseCase) Create(ctx context.Context, userID, amount int64) (string, error) {
	if amount < 1 {
		return "", domainErrors.ErrInvalidAmount
	}
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	checkout, err := u.provider.Create(ctx, model.CheckoutRequest{UserID: usr.ID, Email: usr.Email, Amount: amount})
	if err != nil {
		return "", fmt.Errorf("open checkout: %w", err)
	}
	checkout.UserID = usr.ID
	checkout.Amount = amount
	checkout.Status = model.CheckoutStatusOpen

	if err := u.checkouts.Create(ctx, *checkout); err != nil {
		return "", fmt.Errorf("record checkout: %w", err)
	}
	return checkout.URL, nil
}

// Pending claims a batch of open sessions that are due for reconciliation.
func (u *CheckoutUseCase) Pending(ctx context.Context, limit int) ([]model.Checkout, error) {
	return u.checkouts.SelectBatchForReconcile(ctx, u.reconcileAfter, limit)
}

// Fetch reads the provider side state of a session.
func (u *CheckoutUseCase) Fetch(ctx context.Context, sessionID string) (*model.Checkout, error) {
	return u.provider.Fetch(ctx, sessionID)
}

// MarkExpired closes a session the donor abandoned.
func (u *CheckoutUseCase) MarkExpired(ctx context.Context, sessionID string) error {
	return u.checkouts.UpdateStatus(ctx, sessionID, model.CheckoutStatusExpired)
}
