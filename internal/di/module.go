package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/topdonators/internal/adapter/payment"
	"github.com/polkiloo/topdonators/internal/app"
	"github.com/polkiloo/topdonators/internal/config"
	"github.com/polkiloo/topdonators/internal/logger"
	"github.com/polkiloo/topdonators/internal/pkg/auth"
	"github.com/polkiloo/topdonators/internal/server/http/handlers"
	"github.com/polkiloo/topdonators/internal/server/http/router"
	"github.com/polkiloo/topdonators/internal/storage/postgres"
	"github.com/polkiloo/topdonators/internal/storage/redis"
	"github.com/polkiloo/topdonators/internal/usecase"
)

// Module assembles the whole application graph. Extra options are appended
// last so tests can fx.Replace infrastructure.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		redis.Module,
		payment.Module,
		usecase.Module,
		fx.Provide(
			func(v payment.Verifier) usecase.PaymentVerifier { return v },
			func(c payment.CheckoutClient) usecase.CheckoutProvider { return c },
			func(f *app.DonationFacade) handlers.Facade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
