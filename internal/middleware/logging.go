package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yieldvault/internal/logger"
	"yieldvault/internal/metrics"
	"yieldvault/internal/models"
)

const requestIDKey = "requestID"

// LoggedPrefix marks the API routes whose outcomes are stored in the
// transaction log.
const LoggedPrefix = "/api/v1"

// LogRecorder stores one transaction log entry.
type LogRecorder interface {
	Record(entry *models.TransactionLog) error
}

// RequestLogging returns a Gin middleware that logs each request with a unique
// request ID, method, path, status code, latency, and client IP using Zap.
// Requests are also timed into collector and, for API routes, stored through
// recorder. Either may be nil.
func RequestLogging(collector *metrics.Collector, recorder LogRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.New().String()
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		log := logger.Get()
		log.Infow("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		)

		collector.ObserveRequest(c.Request.Method, c.FullPath(), status, latency)

		if recorder == nil || !strings.HasPrefix(c.Request.URL.Path, LoggedPrefix) {
			return
		}
		entry := transactionLog(c, status)
		if err := recorder.Record(entry); err != nil {
			log.Warnw("failed to record transaction log",
				"request_id", requestID,
				"error", err,
			)
		}
	}
}

func transactionLog(c *gin.Context, status int) *models.TransactionLog {
	entry := &models.TransactionLog{
		Endpoint:   c.Request.URL.Path,
		HTTPMethod: c.Request.Method,
		StatusCode: status,
	}
	if id := c.GetString(UserIDKey); id != "" {
		entry.UserID = &id
	}
	if email := c.GetString(EmailKey); email != "" {
		entry.Email = &email
	}
	if entry.IsError() {
		msg := c.GetString(ErrorMessageKey)
		if msg == "" {
			msg = http.StatusText(status)
		}
		entry.ErrorMessage = &msg
	}
	return entry
}
