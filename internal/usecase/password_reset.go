package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	"github.com/polkiloo/topdonators/internal/domain/model"
	"github.com/polkiloo/topdonators/internal/domain/repository"
	pkgAuth "github.com/polkiloo/topdonators/internal/pkg/auth"
)

// ResetNotifier delivers a password reset link to the user.
type ResetNotifier interface {
	NotifyReset(ctx context.Context, user *model.User, link string) error
}

// LogResetNotifier writes reset links to the log instead of sending mail.
type LogResetNotifier struct {
	logger *slog.Logger
}

// NewLogResetNotifier constructs LogResetNotifier.
func NewLogResetNotifier(logger *slog.Logger) *LogResetNotifier {
	return &LogResetNotifier{logger: logger}
}

// NotifyReset implements ResetNotifier.
func (n *LogResetNotifier) NotifyReset(_ context.Context, user *model.User, link string) error {
	n.logger.Info("password reset requested",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
		slog.String("link", link),
	)
	return nil
}

// PasswordResetUseCase issues and redeems password reset tokens.
type PasswordResetUseCase struct {
	users     repository.UserRepository
	hasher    pkgAuth.PasswordHasher
	tokens    pkgAuth.Strategy
	notifier  ResetNotifier
	publicURL string
}

// NewPasswordResetUseCase constructs PasswordResetUseCase.
func NewPasswordResetUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, notifier ResetNotifier, publicURL string) *PasswordResetUseCase {
	return &PasswordResetUseCase{users: users, hasher: hasher, tokens: strategy, notifier: notifier, publicURL: publicURL}
}

// RequestReset sends a reset link when the email belongs to a user. Unknown
// addresses are not reported to the caller.
func (u *PasswordResetUseCase) RequestReset(ctx context.Context, email string) error {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil
	}
	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := u.tokens.IssueToken(usr.ID, pkgAuth.PurposePasswordReset)
	if err != nil {
		return err
	}
	link := u.publicURL + "/reset-password?token=" + url.QueryEscape(token)
	return u.notifier.NotifyReset(ctx, usr, link)
}

// ResetPassword replaces the password of the user named by a reset token.
func (u *PasswordResetUseCase) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return domainErrors.ErrInvalidResetToken
	}
	if password == "" {
		return domainErrors.ErrInvalidCredentials
	}
	userID, err := u.tokens.ParseToken(token, pkgAuth.PurposePasswordReset)
	if err != nil {
		return domainErrors.ErrInvalidResetToken
	}

	hash, err := hashPassword(u.hasher, password)
	if err != nil {
		return err
	}
	_, err = u.users.Update(ctx, userID, model.ProfileUpdate{PasswordHash: &hash})
	return err
}
