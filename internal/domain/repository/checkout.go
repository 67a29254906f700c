package repository

import (
	"context"
	"time"

	"github.com/polkiloo/topdonators/internal/domain/model"
)

// CheckoutRepository keeps track of payment sessions opened for users.
type CheckoutRepository interface {
	Create(ctx context.Context, checkout model.Checkout) error
	// SelectBatchForReconcile claims open sessions created more than olderThan ago
	// and not checked within the same window.
	SelectBatchForReconcile(ctx context.Context, olderThan time.Duration, limit int) ([]model.Checkout, error)
	UpdateStatus(ctx context.Context, sessionID string, status model.CheckoutStatus) error
}
