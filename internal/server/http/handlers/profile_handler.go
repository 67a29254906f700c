package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	"github.com/polkiloo/topdonators/internal/domain/model"
	"github.com/polkiloo/topdonators/internal/server/http/dto"
)

// ProfileHandler serves the authenticated user's profile.
type ProfileHandler struct {
	facade ProfileFacade
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// CheckAuth handles GET /api/check-auth.
func (h *ProfileHandler) CheckAuth(c *gin.Context) {
	usr, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			abortWithDetail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.CheckAuthResponse{Status: "ok", User: dto.CheckAuthUser{Username: usr.Username}})
}

// Get handles GET /api/user/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	usr, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(usr))
}

// Update handles PATCH /api/user/profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	usr, err := h.facade.UpdateProfile(c.Request.Context(), CurrentUserID(c), model.ProfileChange{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(usr))
}

func writeProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidUsername),
		errors.Is(err, domainErrors.ErrInvalidEmail),
		errors.Is(err, domainErrors.ErrInvalidCredentials):
		abortWithDetail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		abortWithDetail(c, http.StatusConflict, "username or email is already taken")
	case errors.Is(err, domainErrors.ErrNotFound):
		abortWithDetail(c, http.StatusNotFound, "user not found")
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toProfileResponse(usr *model.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:             usr.ID,
		Username:       usr.Username,
		Email:          usr.Email,
		Amount:         usr.Amount,
		Level:          usr.Level,
		LastDonationAt: usr.LastDonationAt,
	}
}
