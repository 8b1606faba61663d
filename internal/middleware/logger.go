package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const loggerKey = "requestLogger"

// LoggerMiddleware attaches a trace-scoped logger to the request and writes
// one line per request once it completes. Must run after TraceMiddleware.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := logger.With(zap.String("trace_id", GetTraceID(c)))
		c.Set(loggerKey, reqLogger)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		switch {
		case len(c.Errors) > 0:
			reqLogger.Error("HTTP Request", append(fields, zap.String("error", c.Errors.String()))...)
		case status >= 500:
			reqLogger.Error("HTTP Request", fields...)
		default:
			reqLogger.Info("HTTP Request", fields...)
		}
	}
}

// RequestLogger returns the logger set by LoggerMiddleware, or a no-op
// logger when the middleware is not installed.
func RequestLogger(c *gin.Context) *zap.Logger {
	if val, ok := c.Get(loggerKey); ok {
		if logger, ok := val.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.NewNop()
}
