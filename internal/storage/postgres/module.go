package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/topdonators/internal/config"
	"github.com/polkiloo/topdonators/internal/domain/repository"
)

// Module provides *Storage and the repositories backed by it. The pool is
// closed when the application stops.
var Module = fx.Options(
	fx.Provide(
		newStorage,
		func(s *Storage) repository.Factory { return s },
		newRepositories,
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

type repositories struct {
	fx.Out

	Users     repository.UserRepository
	Donations repository.DonationRepository
	Checkouts repository.CheckoutRepository
}

func newRepositories(f repository.Factory) repositories {
	return repositories{
		Users:     f.Users(),
		Donations: f.Donations(),
		Checkouts: f.Checkouts(),
	}
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			storage.Logger().Info("closing postgres pool")
			storage.Close()
			return nil
		},
	})
}
