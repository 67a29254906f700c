package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/topdonators/internal/server/http/dto"
)

func abortWithDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Detail: detail})
}
