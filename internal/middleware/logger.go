// Package middleware provides HTTP middleware functions.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger returns a middleware that logs HTTP requests.
func Logger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"route", routeOf(c),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if id := RequestIDFrom(c); id != "" {
			fields = append(fields, "request_id", id)
		}
		if raw != "" {
			fields = append(fields, "query", raw)
		}
		if c.Writer.Size() > 0 {
			fields = append(fields, "size", c.Writer.Size())
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			logger.Errorw("HTTP request", fields...)
		case status >= 400:
			logger.Warnw("HTTP request", fields...)
		default:
			logger.Infow("HTTP request", fields...)
		}
	}
}

// routeOf returns the matched route template, or "unmatched" for 404s.
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
