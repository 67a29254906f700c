package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	"github.com/polkiloo/topdonators/internal/domain/ledger"
	"github.com/polkiloo/topdonators/internal/domain/model"
	"github.com/polkiloo/topdonators/internal/domain/repository"
)

// PaymentVerifier authenticates and decodes provider notifications.
type PaymentVerifier interface {
	Verify(payload []byte, signature string) (*model.PaymentEvent, error)
}

// DonationUseCase turns confirmed payments into ledger credits.
type DonationUseCase struct {
	verifier  PaymentVerifier
	donations repository.DonationRepository
	cache     repository.LeaderboardCache
	logger    *slog.Logger
	now       func() time.Time
}

// NewDonationUseCase constructs DonationUseCase.
func NewDonationUseCase(verifier PaymentVerifier, donations repository.DonationRepository, cache repository.LeaderboardCache, logger *slog.Logger) *DonationUseCase {
	return &DonationUseCase{
		verifier:  verifier,
		donations: donations,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleWebhook verifies a provider notification and credits the donor it
// names. Only ErrInvalidSignature, ErrMalformedPayload and storage failures are
// returned as errors; every other outcome is an acknowledgement.
func (u *DonationUseCase) HandleWebhook(ctx context.Context, payload []byte, signature string) (model.WebhookOutcome, error) {
	event, err := u.verifier.Verify(payload, signature)
	if err != nil {
		u.logger.Warn("payment webhook rejected", slog.String("error", err.Error()))
		return "", err
	}

	if event.Type != model.EventCheckoutCompleted {
		u.ignored(event, model.OutcomeIgnoredEventType)
		return model.OutcomeIgnoredEventType, nil
	}

	amount := event.AmountTotal / 100
	if amount <= 0 {
		u.ignored(event, model.OutcomeIgnoredAmount)
		return model.OutcomeIgnoredAmount, nil
	}

	userID, err := strconv.ParseInt(event.UserReference, 10, 64)
	if err != nil || userID <= 0 {
		u.ignored(event, model.OutcomeIgnoredUser)
		return model.OutcomeIgnoredUser, nil
	}

	outcome, _, err := u.Settle(ctx, model.Payment{SessionID: event.SessionID, UserID: userID, Amount: amount})
	return outcome, err
}

// Settle applies a confirmed payment exactly once per session.
func (u *DonationUseCase) Settle(ctx context.Context, payment model.Payment) (model.WebhookOutcome, *model.Standing, error) {
	if payment.Amount <= 0 {
		return model.OutcomeIgnoredAmount, nil, nil
	}

	standing, err := u.donations.Apply(ctx, payment, func(current model.Standing) (model.Standing, error) {
		return ledger.Credit(current, payment.Amount, u.now())
	})
	switch {
	case errors.Is(err, domainErrors.ErrAlreadyProcessed):
		u.logger.Info("payment already processed", slog.String("session_id", payment.SessionID), slog.Int64("user_id", payment.UserID))
		return model.OutcomeDuplicate, nil, nil
	case errors.Is(err, domainErrors.ErrNotFound):
		u.logger.Info("payment for unknown user ignored", slog.String("session_id", payment.SessionID), slog.Int64("user_id", payment.UserID))
		return model.OutcomeIgnoredUser, nil, nil
	case err != nil:
		u.logger.Error("apply payment failed", slog.String("session_id", payment.SessionID), slog.String("error", err.Error()))
		return "", nil, fmt.Errorf("apply payment %s: %w", payment.SessionID, err)
	}

	u.logger.Info("donation credited",
		slog.String("session_id", payment.SessionID),
		slog.Int64("user_id", payment.UserID),
		slog.Int64("amount", payment.Amount),
		slog.Int64("total", standing.Amount),
		slog.String("level", standing.Level),
	)
	if err := u.cache.Invalidate(ctx); err != nil {
		u.logger.Warn("leaderboard cache invalidation failed", slog.String("error", err.Error()))
	}
	return model.OutcomeCredited, standing, nil
}

func (u *DonationUseCase) ignored(event *model.PaymentEvent, outcome model.WebhookOutcome) {
	u.logger.Info("payment event ignored",
		slog.String("event_id", event.ID),
		slog.String("type", event.Type),
		slog.String("session_id", event.SessionID),
		slog.String("reason", string(outcome)),
	)
}
