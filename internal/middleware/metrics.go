package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"greencart/internal/metrics"
)

// MetricsMiddleware returns middleware recording request counts and latency.
// Requests are labelled by route pattern, not raw path.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
