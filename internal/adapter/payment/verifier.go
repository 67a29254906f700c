package payment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	"github.com/polkiloo/topdonators/internal/domain/model"
)

// SignatureHeader carries the provider signature of a webhook request.
const SignatureHeader = "Stripe-Signature"

// Verifier authenticates and decodes payment notifications.
type Verifier interface {
	Verify(payload []byte, signature string) (*model.PaymentEvent, error)
}

// StripeVerifier checks Stripe webhook signatures with the endpoint secret.
type StripeVerifier struct {
	secret    string
	tolerance time.Duration
}

// NewStripeVerifier creates verifier with the default timestamp tolerance.
func NewStripeVerifier(secret string) *StripeVerifier {
	return &StripeVerifier{secret: secret, tolerance: webhook.DefaultTolerance}
}

// Verify validates the signature before looking at the payload. Events other
// than a completed checkout are returned with only ID and Type filled in.
func (v *StripeVerifier) Verify(payload []byte, signature string) (*model.PaymentEvent, error) {
	if err := webhook.ValidatePayloadWithTolerance(payload, signature, v.secret, v.tolerance); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidSignature, err)
	}

	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrMalformedPayload, err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("%w: missing event type", domainErrors.ErrMalformedPayload)
	}

	result := &model.PaymentEvent{ID: event.ID, Type: string(event.Type)}
	if result.Type != model.EventCheckoutCompleted {
		return result, nil
	}

	if event.Data == nil || len(event.Data.Raw) == 0 {
		return nil, fmt.Errorf("%w: missing data object", domainErrors.ErrMalformedPayload)
	}
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrMalformedPayload, err)
	}
	if session.ID == "" {
		return nil, fmt.Errorf("%w: missing session id", domainErrors.ErrMalformedPayload)
	}

	result.SessionID = session.ID
	result.UserReference = session.ClientReferenceID
	result.AmountTotal = session.AmountTotal
	if session.CustomerDetails != nil {
		result.Email = session.CustomerDetails.Email
	}
	return result, nil
}
