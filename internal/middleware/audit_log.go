// Package middleware provides audit logging utilities.
package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/service"
)

// AuditLog records an operator action such as a login, a tariff import or
// a recorded exchange rate.
func AuditLog(loggingService service.LoggingService, c *gin.Context, action model.ActionType, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	store(loggingService, newAuditEntry(c, "info", action, message, fields))
}

// AuditLogError records a failed operator action.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, action model.ActionType, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := newAuditEntry(c, "error", action, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	store(loggingService, entry)
}

func newAuditEntry(c *gin.Context, level string, action model.ActionType, message string, fields map[string]interface{}) *model.LogEntry {
	operator, role := OperatorFromContext(c)
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Operator:   operator,
		Role:       role,
		ActionType: action,
		Fields:     fields,
	}
}

// store writes the entry through the async logger when it runs, otherwise
// in its own goroutine.
func store(loggingService service.LoggingService, entry *model.LogEntry) {
	if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
		asyncLogger.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
