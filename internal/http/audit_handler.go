package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/service"
)

// AuditHandler serves the persisted request and audit log.
type AuditHandler struct {
	logs service.LoggingService
}

// NewAuditHandler creates a new AuditHandler instance.
func NewAuditHandler(logs service.LoggingService) *AuditHandler {
	return &AuditHandler{logs: logs}
}

// List handles GET /api/audit requests.
//
// @Summary      Search the audit log
// @Description  Returns persisted request and operator audit entries, newest first, with the total match count
// @Tags         Audit
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        operator   query string false "Operator username"
// @Param        action     query string false "Audited action" Enums(login, logout, quote, tariff_import, rate_recorded, history_viewed)
// @Param        request_id query string false "Request ID"
// @Param        level      query string false "Log level" Enums(debug, info, warn, error)
// @Param        path       query string false "Request path prefix"
// @Param        from       query string false "Earliest timestamp, RFC 3339"
// @Param        to         query string false "Latest timestamp, RFC 3339"
// @Param        limit      query int    false "Page size" default(50)
// @Param        offset     query int    false "Entries to skip" default(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.AuditPage} "Audit log page"
// @Failure      400 {object} dto.ErrorResponse "Invalid filter"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      503 {object} dto.ErrorResponse "Log store unavailable"
// @Security     BearerAuth
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	query, err := BindQuery[dto.AuditQuery](c)
	if err != nil {
		builder.BindError(err)
		return
	}
	opts := query.ToOptions()

	ctx := c.Request.Context()
	entries, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	audit(c, model.ActionHistoryViewed, "Audit log viewed", map[string]interface{}{
		"operator_filter": opts.Operator,
		"action_filter":   string(opts.ActionType),
		"matched":         total,
	})

	if entries == nil {
		entries = []model.LogEntry{}
	}
	builder.SuccessOK(dto.AuditPage{
		Entries: entries,
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Skip,
	})
}
