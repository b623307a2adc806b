package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request correlation ID
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID assigns every request a correlation ID, reusing a valid inbound one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(rid); err != nil {
			rid = uuid.NewString()
		}

		c.Set(requestIDKey, rid)
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}

// GetRequestID returns the request's correlation ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Logger logs completed requests with their correlation ID
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
		}
		if len(c.Errors) > 0 {
			logger.Warn("request failed", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		logger.Debug("request completed", fields...)
	}
}
