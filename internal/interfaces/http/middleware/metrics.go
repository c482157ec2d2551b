package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/estatehub/propevd/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts, durations, and in-flight gauges.  The
// route template is used as the path label so that /clients/1 and /clients/2
// share a series.
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		m.HTTPActiveRequests.WithLabelValues(method).Inc()
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPActiveRequests.WithLabelValues(method).Dec()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
