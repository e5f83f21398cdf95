package api

import (
	"alcyxob/exercise-tracker/internal/observability"
	"io"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Constants for context keys
const (
	ContextRequestIDKey = "requestID"
	HeaderRequestID     = "X-Request-ID"
)

// RequestIDMiddleware propagates the caller's X-Request-ID or assigns a new one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// LoggerMiddleware writes one log line per request.
func LoggerMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := requestLogger(c, logger).WithFields(logrus.Fields{
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request handled")
		}
	}
}

// RecoveryMiddleware turns panics into a plain-text 500.
func RecoveryMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		requestLogger(c, logger).WithFields(logrus.Fields{
			"panic": recovered,
			"stack": string(debug.Stack()),
		}).Error("Recovered from panic")
		c.Abort()
		c.String(http.StatusInternalServerError, msgInternalError)
	})
}

// ErrorHandler is the single place where errors attached with c.Error become
// responses. It only acts when the handler has not written a body yet.
func ErrorHandler(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, message := resolveError(err)
		if status >= http.StatusInternalServerError {
			requestLogger(c, logger).WithError(err).Error("Unhandled error")
		}
		c.String(status, message)
	}
}

// MetricsMiddleware records HTTP request metrics.
func MetricsMiddleware(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		endpoint := c.FullPath() // e.g. /api/exercise/log
		if endpoint == "" {
			endpoint = "unmatched" // keep static-file and 404 paths out of the label set
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

func requestLogger(c *gin.Context, logger logrus.FieldLogger) logrus.FieldLogger {
	return logger.WithFields(logrus.Fields{
		"requestId": c.GetString(ContextRequestIDKey),
		"method":    c.Request.Method,
		"path":      c.Request.URL.Path,
	})
}
