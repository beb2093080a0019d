// internal/middleware/recovery_middleware.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos-print-service/internal/utils"
)

// RecoveryMiddleware converts a handler panic into a 500 so a single bad
// print request cannot take the service down mid-shift.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Recovered from panic while serving print request",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", utils.GetRequestID(c)),
			zap.Stack("stacktrace"),
		)

		utils.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	})
}
