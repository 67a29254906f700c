package auth

import (
	"github.com/polkiloo/topdonators/internal/config"
	"go.uber.org/fx"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	opts := Options{SessionTTL: p.Config.TokenTTL, ResetTTL: p.Config.ResetTokenTTL}
	if p.Config.AuthStrategy == config.StrategyHMAC {
		return NewHMACStrategy(p.Config.AuthSecret, opts)
	}
	return NewJWTStrategy(p.Config.AuthSecret, opts)
}
