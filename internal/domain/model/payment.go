package model

import "time"

// EventCheckoutCompleted is the only provider event type that credits a balance.
const EventCheckoutCompleted = "checkout.session.completed"

// PaymentEvent is a verified notification from the payment provider.
type PaymentEvent struct {
	ID            string
	Type          string
	SessionID     string
	UserReference string
	AmountTotal   int64
	Email         string
}

// Payment is a confirmed donation ready to be applied to the ledger.
type Payment struct {
	SessionID string
	UserID    int64
	Amount    int64
}

// ProcessedPayment is the idempotency record kept for every credited session.
type ProcessedPayment struct {
	SessionID   string
	UserID      int64
	Amount      int64
	ProcessedAt time.Time
}

// WebhookOutcome describes how a payment notification was handled.
type WebhookOutcome string

const (
	OutcomeCredited         WebhookOutcome = "credited"
	OutcomeIgnoredEventType WebhookOutcome = "ignored_event_type"
	OutcomeIgnoredAmount    WebhookOutcome = "ignored_amount"
	OutcomeIgnoredUser      WebhookOutcome = "ignored_user"
	OutcomeDuplicate        WebhookOutcome = "duplicate"
)

// Credited reports whether the outcome changed a balance.
func (o WebhookOutcome) Credited() bool {
	return o == OutcomeCredited
}
