package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	"github.com/polkiloo/topdonators/internal/domain/model"
)

const (
	productName       = "Donate to the project"
	defaultRetryAfter = 5 * time.Second
)

// ErrNotConfigured is returned when no provider API key is set.
var ErrNotConfigured = errors.New("payment provider not configured")

// TooManyRequestsError represents rate limiting signal from the payment provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// CheckoutClient opens and inspects provider hosted payment sessions.
type CheckoutClient interface {
	Create(ctx context.Context, req model.CheckoutRequest) (*model.Checkout, error)
	Fetch(ctx context.Context, sessionID string) (*model.Checkout, error)
}

// CheckoutOptions configures StripeCheckoutClient.
type CheckoutOptions struct {
	SecretKey string
	// APIURL overrides the provider endpoint, e.g. for stripe-mock.
	APIURL     string
	Currency   string
	PublicURL  string
	HTTPClient *http.Client
	// MaxNetworkRetries overrides the stripe-go default when set.
	MaxNetworkRetries *int64
}

// StripeCheckoutClient implements CheckoutClient via the Stripe API.
type StripeCheckoutClient struct {
	sessions  session.Client
	currency  string
	publicURL string
	logger    *slog.Logger
}

// NewStripeCheckoutClient creates client with a dedicated backend.
func NewStripeCheckoutClient(opts CheckoutOptions, logger *slog.Logger) *StripeCheckoutClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	backendConfig := &stripe.BackendConfig{
		HTTPClient:        httpClient,
		LeveledLogger:     &leveledLogger{logger: logger},
		MaxNetworkRetries: opts.MaxNetworkRetries,
	}
	if opts.APIURL != "" {
		backendConfig.URL = stripe.String(opts.APIURL)
	}

	return &StripeCheckoutClient{
		sessions: session.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
			Key: opts.SecretKey,
		},
		currency:  strings.ToLower(opts.Currency),
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
		logger:    logger,
	}
}

// Create opens a one item payment session for req.Amount whole currency units.
func (c *StripeCheckoutClient) Create(ctx context.Context, req model.CheckoutRequest) (*model.Checkout, error) {
	if c.sessions.Key == "" {
		return nil, ErrNotConfigured
	}
	if req.Amount < 1 {
		return nil, domainErrors.ErrInvalidAmount
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID:  stripe.String(strconv.FormatInt(req.UserID, 10)),
		SuccessURL:         stripe.String(c.publicURL + "/welcome?donation=success"),
		CancelURL:          stripe.String(c.publicURL + "/cancel"),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(c.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(productName),
					},
					UnitAmount: stripe.Int64(req.Amount * 100),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	s, err := c.sessions.New(params)
	if err != nil {
		return nil, c.mapError("create checkout session", err)
	}
	checkout := toCheckout(s)
	checkout.UserID = req.UserID
	checkout.Amount = req.Amount
	return checkout, nil
}

// Fetch reads the current session state for reconciliation.
func (c *StripeCheckoutClient) Fetch(ctx context.Context, sessionID string) (*model.Checkout, error) {
	if c.sessions.Key == "" {
		return nil, ErrNotConfigured
	}
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := c.sessions.Get(sessionID, params)
	if err != nil {
		return nil, c.mapError("fetch checkout session", err)
	}
	return toCheckout(s), nil
}

func (c *StripeCheckoutClient) mapError(op string, err error) error {
	var serr *stripe.Error
	if errors.As(err, &serr) {
		switch serr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return TooManyRequestsError{RetryAfter: defaultRetryAfter}
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", op, domainErrors.ErrNotFound)
		}
		c.logger.Error("payment provider request failed",
			slog.String("op", op),
			slog.Int("status", serr.HTTPStatusCode),
			slog.String("type", string(serr.Type)),
			slog.String("message", serr.Msg),
		)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toCheckout(s *stripe.CheckoutSession) *model.Checkout {
	checkout := &model.Checkout{
		SessionID:     s.ID,
		UserReference: s.ClientReferenceID,
		AmountTotal:   s.AmountTotal,
		Amount:        s.AmountTotal / 100,
		URL:           s.URL,
		Paid:          s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
	if id, err := strconv.ParseInt(s.ClientReferenceID, 10, 64); err == nil {
		checkout.UserID = id
	}
	if s.Created > 0 {
		checkout.CreatedAt = time.Unix(s.Created, 0).UTC()
	}
	switch s.Status {
	case stripe.CheckoutSessionStatusComplete:
		checkout.Status = model.CheckoutStatusCompleted
	case stripe.CheckoutSessionStatusExpired:
		checkout.Status = model.CheckoutStatusExpired
	default:
		checkout.Status = model.CheckoutStatusOpen
	}
	return checkout
}

// leveledLogger routes stripe-go client logs into slog.
type leveledLogger struct {
	logger *slog.Logger
}

func (l *leveledLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), slog.String("component", "stripe"))
}

func (l *leveledLogger) Infof(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), slog.String("component", "stripe"))
}

func (l *leveledLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...), slog.String("component", "stripe"))
}

func (l *leveledLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), slog.String("component", "stripe"))
}
