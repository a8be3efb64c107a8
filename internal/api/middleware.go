package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/developer-mesh/slack-mcp/pkg/auth"
	"github.com/developer-mesh/slack-mcp/pkg/observability"
)

// RequestLogger logs each request with a generated request ID
func RequestLogger(logger observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		logger.Info("request completed", map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
	}
}

// MetricsMiddleware records request counts and durations
func MetricsMiddleware(metrics observability.MetricsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		labels := map[string]string{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}
		metrics.RecordCounter("http_requests_total", 1, labels)
		metrics.RecordHistogram("http_request_duration_seconds", time.Since(start).Seconds(), labels)
	}
}

// HeaderCapture copies the inbound request headers into the request
// context so the credential resolver can read per-request tokens. The
// resolver handles case variants itself; values are passed through as-is.
func HeaderCapture() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(c.Request.Header) > 0 {
			headers := make(map[string]string, len(c.Request.Header))
			for name, values := range c.Request.Header {
				if len(values) > 0 {
					headers[name] = values[0]
				}
			}
			ctx := auth.WithRequestHeaders(c.Request.Context(), headers)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}
