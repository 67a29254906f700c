package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	"github.com/polkiloo/topdonators/internal/server/http/dto"
)

const forgotPasswordMessage = "If this email is registered, a recovery link has been sent to it"

// PasswordHandler serves password recovery.
type PasswordHandler struct {
	facade PasswordFacade
}

// NewPasswordHandler constructs PasswordHandler.
func NewPasswordHandler(facade PasswordFacade) *PasswordHandler {
	return &PasswordHandler{facade: facade}
}

// Forgot handles POST /api/password/forgot. The answer never reveals whether
// the address is registered.
func (h *PasswordHandler) Forgot(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.facade.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: forgotPasswordMessage})
}

// Reset handles POST /api/password/reset.
func (h *PasswordHandler) Reset(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.facade.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password changed successfully"})
	case errors.Is(err, domainErrors.ErrInvalidResetToken), errors.Is(err, domainErrors.ErrInvalidCredentials):
		abortWithDetail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domainErrors.ErrNotFound):
		abortWithDetail(c, http.StatusNotFound, "user not found")
	default:
		c.Status(http.StatusInternalServerError)
	}
}
