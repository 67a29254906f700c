package model

import "time"

// CheckoutStatus tracks a provider-hosted payment session on our side.
type CheckoutStatus string

const (
	CheckoutStatusOpen      CheckoutStatus = "OPEN"
	CheckoutStatusCompleted CheckoutStatus = "COMPLETED"
	CheckoutStatusExpired   CheckoutStatus = "EXPIRED"
)

// CheckoutRequest holds what the provider needs to open a payment session.
type CheckoutRequest struct {
	UserID int64
	Email  string
	Amount int64
}

// Checkout mirrors a provider checkout session.
type Checkout struct {
	SessionID     string
	UserID        int64
	UserReference string
	Amount        int64
	AmountTotal   int64
	URL           string
	Status        CheckoutStatus
	Paid          bool
	CreatedAt     time.Time
	CheckedAt     *time.Time
}
