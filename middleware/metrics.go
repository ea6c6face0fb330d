package middleware

import (
	"time"

	"clubhouse/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestMetrics records Prometheus counters and a structured access log
// line for each request.
func RequestMetrics(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()
		metrics.RecordRequest(c.Request.Method, route, status, elapsed)

		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
			zap.String("ip", clientIP(c)),
		)
	}
}
