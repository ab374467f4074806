package middleware

import (
	"net/http"
	"time"

	"gator-threads/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID returns the id assigned to the current request, if any.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger assigns every request an id, logs it once it completes and
// records it in metrics when a collector is given.
func RequestLogger(metrics *utils.MetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		if metrics != nil {
			metrics.IncrementRequests()
			metrics.AddOperationLatency(c.Request.Method+" "+route, latency)
			if status >= http.StatusInternalServerError {
				metrics.IncrementErrors()
			}
		}

		entry := logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"route":      route,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency":    latency.String(),
			"client_ip":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request completed")
		}
	}
}
