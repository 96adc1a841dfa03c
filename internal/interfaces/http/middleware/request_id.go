package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header the request id travels in
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key the rest of the stack reads
const requestIDKey = "request_id"

// RequestID assigns every request an id, honoring one supplied by the caller
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request id assigned to this request
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
