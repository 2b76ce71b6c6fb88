package system

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReqLoggerKey is the context key used to store request-scoped logger in gin context.
const ReqLoggerKey = "reqLogger"

// RequestIDHeader carries the request ID back to the client.
const RequestIDHeader = "X-Request-ID"

// GetReqLogger returns the request-scoped sugared logger from gin.Context if present,
// otherwise returns the fallback.
func GetReqLogger(c *gin.Context, fallback *zap.SugaredLogger) *zap.SugaredLogger {
	if c == nil {
		return fallback
	}
	if v, ok := c.Get(ReqLoggerKey); ok {
		if l, ok2 := v.(*zap.SugaredLogger); ok2 {
			return l
		}
	}
	return fallback
}

// RequestLogger stores a logger annotated with the request ID, method, path
// and client IP in the gin context. An incoming X-Request-ID is reused.
func RequestLogger(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)
		c.Set(ReqLoggerKey, base.With(
			"requestID", reqID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"clientIP", c.ClientIP(),
		))
		c.Next()
	}
}

// EnrichReqLoggerWithTrigger annotates the request-scoped logger with the
// notification trigger ("manual" or "latest") stored under "trigger".
func EnrichReqLoggerWithTrigger(c *gin.Context, reqLogger *zap.SugaredLogger) *zap.SugaredLogger {
	if c == nil || reqLogger == nil {
		return reqLogger
	}
	if v, ok := c.Get("trigger"); ok {
		if trigger, ok2 := v.(string); ok2 && trigger != "" {
			reqLogger = reqLogger.With("trigger", trigger)
		}
	}
	return reqLogger
}
