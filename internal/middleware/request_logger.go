package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/logger"
	"github.com/guttosm/cargo-quote/internal/service"
	"github.com/rs/zerolog"
)

// probePaths are logged at debug and never persisted.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
	"/metrics": {},
}

// RequestLogger logs every request with its request ID, route, status and
// latency. When loggingService is set the entry is also persisted.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		route := c.FullPath()
		operator, role := OperatorFromContext(c)
		errMsg := c.Errors.ByType(gin.ErrorTypeAny).String()

		log := logger.ForRequest(GetRequestID(c)).With().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("route", route).
			Int("status_code", statusCode).
			Int64("duration_ms", latency.Milliseconds()).
			Int("response_bytes", c.Writer.Size()).
			Str("ip", c.ClientIP()).
			Logger()

		_, probe := probePaths[path]
		event := log.WithLevel(requestLevel(statusCode, probe))
		if operator != "" {
			event = event.Str("operator", operator)
		}
		client := APIClientFromContext(c)
		if client != "" {
			event = event.Str("api_client", client)
		}
		if errMsg != "" {
			event = event.Str("error", errMsg)
		}
		event.Msg("HTTP request")

		if loggingService == nil || probe {
			return
		}

		entry := &model.LogEntry{
			Timestamp:  start.UTC(),
			Level:      getLogLevel(statusCode),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       path,
			StatusCode: statusCode,
			Duration:   latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Error:      errMsg,
			Operator:   operator,
			Role:       role,
		}
		if route != "" && route != path {
			entry.WithField("route", route)
		}
		if client != "" {
			entry.WithField("api_client", client)
		}
		store(loggingService, entry)
	}
}

func requestLevel(statusCode int, probe bool) zerolog.Level {
	switch {
	case statusCode >= 500:
		return zerolog.ErrorLevel
	case statusCode >= 400:
		return zerolog.WarnLevel
	case probe:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// getLogLevel returns the persisted level for statusCode.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
