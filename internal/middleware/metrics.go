package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festy23/task_capacity/internal/metrics"
)

// Metrics records request count and latency per route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, routeOf(c), c.Writer.Status(), time.Since(start))
	}
}
