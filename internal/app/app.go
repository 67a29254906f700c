package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/topdonators/internal/config"
	"github.com/polkiloo/topdonators/internal/domain/repository"
	"github.com/polkiloo/topdonators/internal/storage/postgres"
	"github.com/polkiloo/topdonators/internal/usecase"
	"github.com/polkiloo/topdonators/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newDonationFacade,
		newHTTPServer,
		newCheckoutReconciler,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth          *usecase.AuthUseCase
	Donations     *usecase.DonationUseCase
	Checkouts     *usecase.CheckoutUseCase
	Leaderboard   *usecase.LeaderboardUseCase
	Profiles      *usecase.ProfileUseCase
	PasswordReset *usecase.PasswordResetUseCase
	Storage       *postgres.Storage
	Cache         repository.LeaderboardCache
}

func newDonationFacade(p facadeParams) *DonationFacade {
	return NewDonationFacade(UseCases{
		Auth:          p.Auth,
		Donations:     p.Donations,
		Checkouts:     p.Checkouts,
		Leaderboard:   p.Leaderboard,
		Profiles:      p.Profiles,
		PasswordReset: p.PasswordReset,
	}, map[string]HealthChecker{
		"postgres": p.Storage,
		"redis":    p.Cache,
	})
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *DonationFacade
	Config *config.Config
	Logger *slog.Logger
}

func newCheckoutReconciler(p workerParams) *worker.CheckoutReconciler {
	return worker.NewCheckoutReconciler(
		p.Facade,
		p.Config.ReconcileInterval,
		p.Config.ReconcileBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.CheckoutReconciler
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting topdonators", slog.String("addr", p.Server.Addr))
			// the start context ends once startup completes
			p.Worker.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("topdonators stopped")
			return nil
		},
	})
}
