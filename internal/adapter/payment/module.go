package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/topdonators/internal/config"
)

// Module exposes the webhook verifier and checkout client to fx graph.
var Module = fx.Provide(newVerifier, newCheckoutClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newVerifier(p clientParams) Verifier {
	return NewStripeVerifier(p.Config.StripeWebhookSecret)
}

func newCheckoutClient(p clientParams) CheckoutClient {
	if p.Config.StripeSecretKey == "" {
		p.Logger.Warn("STRIPE_SECRET_KEY is empty, checkout creation is disabled")
	}
	return NewStripeCheckoutClient(CheckoutOptions{
		SecretKey: p.Config.StripeSecretKey,
		APIURL:    p.Config.StripeAPIURL,
		Currency:  p.Config.CheckoutCurrency,
		PublicURL: p.Config.PublicURL,
	}, p.Logger)
}
