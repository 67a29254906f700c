package config

import "go.uber.org/fx"

// Module provides *Config parsed from .env, environment and flags.
var Module = fx.Options(fx.Provide(Load))
