package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"car-inventory-service/internal/middleware"
)

// internalError hides the fault behind the fixed 500 envelope and records it
// for operator visibility. Nothing about the underlying error reaches the
// caller.
func internalError(c *gin.Context, log *zap.Logger, op string, err error) {
	log.Error("store fault",
		zap.String("op", op),
		zap.Error(err),
		zap.String("request_id", middleware.RequestIDFrom(c)))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "An internal server error occurred"})
}
