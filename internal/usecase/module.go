package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/topdonators/internal/config"
	"github.com/polkiloo/topdonators/internal/domain/repository"
	pkgAuth "github.com/polkiloo/topdonators/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewAuthUseCase,
		NewDonationUseCase,
		NewProfileUseCase,
		newCheckoutUseCase,
		newLeaderboardUseCase,
		newPasswordResetUseCase,
		fx.Annotate(NewLogResetNotifier, fx.As(new(ResetNotifier))),
	),
)

func newCheckoutUseCase(provider CheckoutProvider, checkouts repository.CheckoutRepository, users repository.UserRepository, cfg *config.Config) *CheckoutUseCase {
	return NewCheckoutUseCase(provider, checkouts, users, cfg.ReconcileAfter)
}

func newLeaderboardUseCase(users repository.UserRepository, cache repository.LeaderboardCache, cfg *config.Config, logger *slog.Logger) *LeaderboardUseCase {
	return NewLeaderboardUseCase(users, cache, cfg.LeaderboardSize, logger)
}

func newPasswordResetUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, notifier ResetNotifier, cfg *config.Config) *PasswordResetUseCase {
	return NewPasswordResetUseCase(users, hasher, strategy, notifier, cfg.PublicURL)
}
