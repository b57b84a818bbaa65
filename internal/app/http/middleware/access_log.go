package middleware

import (
	"time"

	"locallibrary/internal/platform/logger"

	"github.com/gin-gonic/gin"
)

// AccessLog logs one line per request once the handler chain has finished.
func AccessLog(log *logger.Logger) gin.HandlerFunc {
	log = log.With("component", "http")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		switch {
		case status >= 500:
			log.Error("Request completed", kv...)
		case status >= 400:
			log.Warn("Request completed", kv...)
		default:
			log.Info("Request completed", kv...)
		}
	}
}
