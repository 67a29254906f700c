package router

import "go.uber.org/fx"

// Module provides the gin engine serving the public API.
var Module = fx.Options(fx.Provide(Setup))
