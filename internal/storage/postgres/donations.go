package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	"github.com/polkiloo/topdonators/internal/domain/model"
	"github.com/polkiloo/topdonators/internal/domain/repository"
)

type donationRepository struct {
	storage *Storage
}

func (r *donationRepository) Apply(ctx context.Context, payment model.Payment, credit repository.CreditFunc) (*model.Standing, error) {
	const (
		lockUser = `SELECT amount, philanthrop_level, last_donation_time
                    FROM users WHERE id=$1 FOR UPDATE`
		recordPayment = `INSERT INTO processed_payments (session_id, user_id, amount)
                         VALUES ($1, $2, $3)
                         ON CONFLICT (session_id) DO NOTHING`
		updateUser = `UPDATE users SET amount=$1, philanthrop_level=$2, last_donation_time=$3 WHERE id=$4`
		completeCheckout = `UPDATE checkout_sessions SET status=$1, updated_at=NOW() WHERE session_id=$2`
	)

	var next model.Standing
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var current model.Standing
		if err := tx.QueryRow(ctx, lockUser, payment.UserID).Scan(&current.Amount, &current.Level, &current.LastDonationAt); err != nil {
			return translate(err)
		}

		tag, err := tx.Exec(ctx, recordPayment, payment.SessionID, payment.UserID, payment.Amount)
		if err != nil {
			return fmt.Errorf("record payment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrAlreadyProcessed
		}

		next, err = credit(current)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, updateUser, next.Amount, next.Level, next.LastDonationAt, payment.UserID); err != nil {
			return fmt.Errorf("update standing: %w", err)
		}
		if _, err := tx.Exec(ctx, completeCheckout, model.CheckoutStatusCompleted, payment.SessionID); err != nil {
			return fmt.Errorf("complete checkout: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &next, nil
}
