package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/topdonators/internal/domain/ledger"
	"github.com/polkiloo/topdonators/internal/domain/model"
)

const userColumns = `id, username, email, password_hash, amount, philanthrop_level, last_donation_time, created_at`

type userRepository struct {
	storage *Storage
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Amount, &u.Level, &u.LastDonationAt, &u.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (username, email, password_hash, amount, philanthrop_level)
                   VALUES ($1, $2, $3, 0, $4) RETURNING id, created_at`
	u := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Standing:     model.Standing{Level: ledger.TierZero},
	}
	err := r.storage.pool.QueryRow(ctx, query, username, email, passwordHash, ledger.TierZero).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

// Update applies the non-nil fields of update and returns the stored user.
func (r *userRepository) Update(ctx context.Context, id int64, update model.ProfileUpdate) (*model.User, error) {
	if update.Empty() {
		return r.GetByID(ctx, id)
	}
	const query = `UPDATE users SET
                       username = COALESCE($2, username),
                       email = COALESCE($3, email),
                       password_hash = COALESCE($4, password_hash)
                   WHERE id=$1
                   RETURNING ` + userColumns
	return scanUser(r.storage.pool.QueryRow(ctx, query, id, update.Username, update.Email, update.PasswordHash))
}

func (r *userRepository) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	const query = `SELECT id, username, amount, philanthrop_level, last_donation_time
                   FROM users ORDER BY amount DESC, id LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.LeaderboardEntry, 0, limit)
	for rows.Next() {
		e := model.LeaderboardEntry{Rank: len(result) + 1}
		if err := rows.Scan(&e.UserID, &e.Username, &e.Amount, &e.Level, &e.LastDonationAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
