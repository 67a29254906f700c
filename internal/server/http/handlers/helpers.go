package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/topdonators/internal/server/http/middleware"
)

// CurrentUserID returns the donor resolved by AuthRequired, or 0.
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(middleware.UserIDContextKey)
}
