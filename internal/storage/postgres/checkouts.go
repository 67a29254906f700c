package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	"github.com/polkiloo/topdonators/internal/domain/model"
)

type checkoutRepository struct {
	storage *Storage
}

func (r *checkoutRepository) Create(ctx context.Context, checkout model.Checkout) error {
	const query = `INSERT INTO checkout_sessions (session_id, user_id, amount, status) VALUES ($1, $2, $3, $4)`
	if _, err := r.storage.pool.Exec(ctx, query, checkout.SessionID, checkout.UserID, checkout.Amount, checkout.Status); err != nil {
		return translate(err)
	}
	return nil
}

func (r *checkoutRepository) SelectBatchForReconcile(ctx context.Context, olderThan time.Duration, limit int) ([]model.Checkout, error) {
	const selectQuery = `SELECT session_id, user_id, amount, status, created_at, checked_at
                         FROM checkout_sessions
                         WHERE status = 'OPEN'
                           AND created_at < $1
                           AND (checked_at IS NULL OR checked_at < $1)
                         ORDER BY created_at
                         LIMIT $2
                         FOR UPDATE SKIP LOCKED`
	const touchQuery = `UPDATE checkout_sessions SET checked_at=$1 WHERE session_id=$2`

	now := time.Now().UTC()
	cutoff := now.Add(-olderThan)

	var checkouts []model.Checkout
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, cutoff, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c model.Checkout
			if err := rows.Scan(&c.SessionID, &c.UserID, &c.Amount, &c.Status, &c.CreatedAt, &c.CheckedAt); err != nil {
				return err
			}
			checkouts = append(checkouts, c)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rows.Close()

		for i := range checkouts {
			if _, err := tx.Exec(ctx, touchQuery, now, checkouts[i].SessionID); err != nil {
				return err
			}
			checkouts[i].CheckedAt = &now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return checkouts, nil
}

func (r *checkoutRepository) UpdateStatus(ctx context.Context, sessionID string, status model.CheckoutStatus) error {
	const query = `UPDATE checkout_sessions SET status=$1, updated_at=NOW() WHERE session_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
