package dto

// CheckoutRequest asks for a payment session of Amount whole currency units.
type CheckoutRequest struct {
	Amount int64 `json:"amount"`
}

// CheckoutResponse holds the hosted payment page URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// WebhookResponse acknowledges a payment notification.
type WebhookResponse struct {
	Status string `json:"status"`
}
