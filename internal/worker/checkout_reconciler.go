package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/topdonators/internal/adapter/payment"
	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	"github.com/polkiloo/topdonators/internal/domain/model"
)

// DonationFacade exposes the subset of application functionality required by the worker.
type DonationFacade interface {
	PendingCheckouts(ctx context.Context, limit int) ([]model.Checkout, error)
	FetchCheckout(ctx context.Context, sessionID string) (*model.Checkout, error)
	SettleCheckout(ctx context.Context, payment model.Payment) (model.WebhookOutcome, error)
	ExpireCheckout(ctx context.Context, sessionID string) error
}

// CheckoutReconciler polls the payment provider for checkout sessions whose
// webhook never arrived and settles or expires them concurrently.
type CheckoutReconciler struct {
	facade       DonationFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Checkout
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewCheckoutReconciler constructs the reconciler worker pool.
func NewCheckoutReconciler(facade DonationFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *CheckoutReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &CheckoutReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Checkout, batchSize*workers),
	}
}

// Start launches background processing.
func (r *CheckoutReconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *CheckoutReconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *CheckoutReconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *CheckoutReconciler) fetchAndDispatch(ctx context.Context) {
	checkouts, err := r.facade.PendingCheckouts(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch pending checkouts failed", slog.String("error", err.Error()))
		return
	}
	for _, checkout := range checkouts {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- checkout:
		}
	}
}

func (r *CheckoutReconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case checkout, ok := <-r.jobs:
			if !ok {
				return
			}
			r.reconcile(ctx, checkout)
		}
	}
}

func (r *CheckoutReconciler) reconcile(ctx context.Context, pending model.Checkout) {
	remote, err := r.facade.FetchCheckout(ctx, pending.SessionID)
	if err != nil {
		var tooMany payment.TooManyRequestsError
		switch {
		case errors.As(err, &tooMany):
			r.logger.Warn("payment provider rate limited", slog.Duration("retry_after", tooMany.RetryAfter))
			sleep(ctx, tooMany.RetryAfter)
		case errors.Is(err, domainErrors.ErrNotFound):
			r.logger.Warn("checkout unknown to provider", slog.String("session_id", pending.SessionID))
			r.expire(ctx, pending.SessionID)
		default:
			r.logger.Error("fetch checkout failed", slog.String("session_id", pending.SessionID), slog.String("error", err.Error()))
		}
		return
	}

	switch remote.Status {
	case model.CheckoutStatusCompleted:
		if !remote.Paid {
			return
		}
		userID := remote.UserID
		if userID == 0 {
			userID = pending.UserID
		}
		outcome, err := r.facade.SettleCheckout(ctx, model.Payment{SessionID: pending.SessionID, UserID: userID, Amount: remote.Amount})
		if err != nil {
			r.logger.Error("settle checkout failed", slog.String("session_id", pending.SessionID), slog.String("error", err.Error()))
			return
		}
		r.logger.Info("checkout reconciled", slog.String("session_id", pending.SessionID), slog.String("outcome", string(outcome)))
	case model.CheckoutStatusExpired:
		r.expire(ctx, pending.SessionID)
	}
}

func (r *CheckoutReconciler) expire(ctx context.Context, sessionID string) {
	if err := r.facade.ExpireCheckout(ctx, sessionID); err != nil {
		r.logger.Error("expire checkout failed", slog.String("session_id", sessionID), slog.String("error", err.Error()))
	}
}

func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
