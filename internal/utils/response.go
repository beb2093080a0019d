// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError represents the error payload returned on failed requests
type APIError struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// OK sends the bare-string success response the POS frontend expects.
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, "OK")
}

// Data sends a successful response carrying a payload
func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error sends an error response
func Error(c *gin.Context, statusCode int, message string, err error) {
	payload := APIError{
		Message: message,
	}
	if err != nil {
		payload.Detail = err.Error()
	}

	c.JSON(statusCode, payload)
}

// GetRequestID extracts the request ID assigned by the middleware
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		return requestID.(string)
	}
	return ""
}
