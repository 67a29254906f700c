package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	"github.com/polkiloo/topdonators/internal/server/http/dto"
)

// MaxWebhookBody caps the payment notification body.
const MaxWebhookBody = 1 << 20

// SignatureHeader carries the provider signature of a webhook body.
const SignatureHeader = "Stripe-Signature"

// DonationHandler exposes checkout, leaderboard and webhook endpoints.
type DonationHandler struct {
	facade DonationFacade
}

// NewDonationHandler constructs DonationHandler.
func NewDonationHandler(facade DonationFacade) *DonationHandler {
	return &DonationHandler{facade: facade}
}

// Checkout handles POST /api/user/checkout.
func (h *DonationHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "invalid amount")
		return
	}

	url, err := h.facade.Checkout(c.Request.Context(), CurrentUserID(c), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			abortWithDetail(c, http.StatusBadRequest, "invalid amount")
		case errors.Is(err, domainErrors.ErrNotFound):
			abortWithDetail(c, http.StatusNotFound, "user not found")
		default:
			abortWithDetail(c, http.StatusBadGateway, "payment provider unavailable")
		}
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutResponse{URL: url})
}

// Leaderboard handles GET /api/leaderboard.
func (h *DonationHandler) Leaderboard(c *gin.Context) {
	entries, err := h.facade.Leaderboard(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Webhook handles POST /api/payments/webhook. Every outcome other than a
// rejected or unstorable notification is acknowledged with 200.
func (h *DonationHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, MaxWebhookBody+1))
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(payload) > MaxWebhookBody {
		abortWithDetail(c, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	if _, err := h.facade.HandleWebhook(c.Request.Context(), payload, c.GetHeader(SignatureHeader)); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidSignature):
			abortWithDetail(c, http.StatusBadRequest, "invalid signature")
		case errors.Is(err, domainErrors.ErrMalformedPayload):
			abortWithDetail(c, http.StatusBadRequest, "invalid payload")
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.WebhookResponse{Status: "success"})
}
