package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wellness-admin/monitoring"
)

func PrometheusMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			// unknown paths would otherwise explode label cardinality
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		monitoring.RequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			http.StatusText(status),
		).Inc()

		monitoring.RequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(duration)
	}
}
