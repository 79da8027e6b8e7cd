package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/middleware"
	"github.com/guttosm/cargo-quote/internal/service"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// Handler provides HTTP handlers for quote routes.
type Handler struct {
	quotes  service.QuoteService
	tariffs service.TariffService
}

// NewHandler creates a new Handler instance.
func NewHandler(quotes service.QuoteService, tariffs service.TariffService) *Handler {
	return &Handler{
		quotes:  quotes,
		tariffs: tariffs,
	}
}

// Quote handles POST /api/quote requests.
//
// @Summary      Quote a shipment
// @Description  Prices a shipment from China for every packaging method (bag, corners, frame) and both delivery speeds. Numeric fields may be sent as numbers or strings and may use a comma as the decimal separator. Supports idempotency via Idempotency-Key header.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        X-API-Key header string false "API key (required if API keys are configured)"
// @Param        request body dto.QuoteRequest true "Shipment"
// @Success      200 {object} dto.SuccessResponse{data=model.QuoteRecord} "Computed quote"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid shipment"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      422 {object} dto.ErrorResponse "Shipment outside every tariff range"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Tariffs or exchange rate unavailable"
// @Router       /api/quote [post]
func (h *Handler) Quote(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.QuoteRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	h.quote(c, builder, req)
}

// QuoteQuery handles GET /api/quote requests.
//
// @Summary      Quote a shipment from query parameters
// @Description  Same as POST /api/quote with the shipment given as query parameters.
// @Tags         Quotes
// @Produce      json
// @Param        category query string true "Product category"
// @Param        quantity query string true "Number of boxes"
// @Param        weight query string false "Weight of one box, kg"
// @Param        length query string false "Box length, cm"
// @Param        width query string false "Box width, cm"
// @Param        height query string false "Box height, cm"
// @Param        total_weight query string false "Total weight, kg"
// @Param        total_volume query string false "Total volume, m3"
// @Param        declared_value query string true "Declared goods value"
// @Param        currency query string false "Currency of the declared value"
// @Success      200 {object} dto.SuccessResponse{data=model.QuoteRecord} "Computed quote"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid shipment"
// @Failure      422 {object} dto.ErrorResponse "Shipment outside every tariff range"
// @Failure      503 {object} dto.ErrorResponse "Tariffs or exchange rate unavailable"
// @Router       /api/quote [get]
func (h *Handler) QuoteQuery(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindQuery[dto.QuoteRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	h.quote(c, builder, req)
}

func (h *Handler) quote(c *gin.Context, builder *ResponseBuilder, req *dto.QuoteRequest) {
	ctx := service.WithRequestID(c.Request.Context(), middleware.GetRequestID(c))

	record, err := h.quotes.Quote(ctx, req.ToRawShipment())
	if err != nil {
		builder.ServiceError(err)
		return
	}

	audit(c, model.ActionQuote, "Quote computed", map[string]interface{}{
		"quote_id":       record.ID,
		"category":       record.Input.Category,
		"tariff_version": record.TariffVersion,
	})

	builder.SuccessOK(record)
}

// Categories handles GET /api/categories requests.
//
// @Summary      List product categories
// @Description  Returns the product categories of the active density table, in table order.
// @Tags         Quotes
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Categories"
// @Failure      503 {object} dto.ErrorResponse "Tariff store unavailable"
// @Router       /api/categories [get]
func (h *Handler) Categories(c *gin.Context) {
	builder := NewResponseBuilder(c)

	categories, err := h.tariffs.Categories(c.Request.Context())
	if err != nil {
		builder.ServiceError(err)
		return
	}

	builder.SuccessOK(gin.H{"categories": categories})
}

// QuoteHistory handles GET /api/quotes/history requests.
//
// @Summary      List computed quotes
// @Description  Returns the most recent quotes, newest first.
// @Tags         Quotes
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        limit query int false "Maximum number of quotes" default(50)
// @Success      200 {object} dto.SuccessResponse{data=[]model.QuoteRecord} "Quote history"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/quotes/history [get]
func (h *Handler) QuoteHistory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := historyLimit(c)
	records, err := h.quotes.History(c.Request.Context(), limit)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	audit(c, model.ActionHistoryViewed, "Quote history viewed", map[string]interface{}{
		"limit": limit,
	})

	builder.SuccessOK(records)
}

// historyLimit reads the limit query parameter, clamped to maxHistoryLimit.
func historyLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}
