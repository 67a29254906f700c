package repository

import (
	"context"

	"github.com/polkiloo/topdonators/internal/domain/model"
)

// CreditFunc computes the new standing from the locked current one.
type CreditFunc func(current model.Standing) (model.Standing, error)

// DonationRepository applies confirmed payments to user balances.
type DonationRepository interface {
	// Apply locks the user, records the payment session as processed and stores
	// the standing returned by credit, all in one transaction. It returns
	// ErrAlreadyProcessed for a known session and ErrNotFound for an unknown user.
	Apply(ctx context.Context, payment model.Payment, credit CreditFunc) (*model.Standing, error)
}
