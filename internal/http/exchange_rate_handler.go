package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/i18n"
	"github.com/guttosm/cargo-quote/internal/service"
)

// ExchangeRateHandler provides HTTP handlers for exchange rate routes.
type ExchangeRateHandler struct {
	rates service.ExchangeRateService
}

// NewExchangeRateHandler creates a new ExchangeRateHandler instance.
func NewExchangeRateHandler(rates service.ExchangeRateService) *ExchangeRateHandler {
	return &ExchangeRateHandler{rates: rates}
}

// Latest handles GET /api/exchange-rates/latest requests.
//
// @Summary      Get the current exchange rate
// @Description  Returns the latest recorded rate for the configured pair, or the configured fallback rate
// @Tags         Exchange Rates
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.ExchangeRate} "Current rate"
// @Failure      404 {object} dto.ErrorResponse "No rate recorded and no fallback configured"
// @Failure      503 {object} dto.ErrorResponse "Rate store unavailable"
// @Router       /api/exchange-rates/latest [get]
func (h *ExchangeRateHandler) Latest(c *gin.Context) {
	builder := NewResponseBuilder(c)

	rate, err := h.rates.Current(c.Request.Context())
	if err != nil {
		builder.ServiceError(err)
		return
	}
	if rate == nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyNoExchangeRate, nil)
		return
	}

	builder.SuccessOK(rate)
}

// Record handles POST /api/exchange-rates requests.
//
// @Summary      Record an exchange rate
// @Description  Stores a new observation for the configured currency pair
// @Tags         Exchange Rates
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.RecordExchangeRateRequest true "Rate observation"
// @Success      201 {object} dto.SuccessResponse{data=model.ExchangeRate} "Recorded rate"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid rate"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      409 {object} dto.ErrorResponse "Store is read-only"
// @Failure      503 {object} dto.ErrorResponse "Rate store unavailable"
// @Security     BearerAuth
// @Router       /api/exchange-rates [post]
func (h *ExchangeRateHandler) Record(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.RecordExchangeRateRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}
	value, err := req.ParseRate()
	if err != nil {
		builder.ServiceError(err)
		return
	}

	rate, err := h.rates.Record(c.Request.Context(), value, req.Source, req.Notes)
	if err != nil {
		auditError(c, model.ActionRateRecorded, "Exchange rate rejected", err, map[string]interface{}{
			"rate": value.String(),
		})
		builder.ServiceError(err)
		return
	}

	audit(c, model.ActionRateRecorded, "Exchange rate recorded", map[string]interface{}{
		"pair":   rate.Pair.String(),
		"rate":   rate.Rate.String(),
		"source": rate.Source,
	})

	builder.SuccessCreated(rate)
}

// History handles GET /api/exchange-rates/history requests.
//
// @Summary      List recorded exchange rates
// @Description  Returns recorded rates for the configured pair, newest first
// @Tags         Exchange Rates
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        limit query int false "Maximum number of rates" default(50)
// @Success      200 {object} dto.SuccessResponse{data=[]model.ExchangeRate} "Rate history"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      503 {object} dto.ErrorResponse "Rate store unavailable"
// @Security     BearerAuth
// @Router       /api/exchange-rates/history [get]
func (h *ExchangeRateHandler) History(c *gin.Context) {
	builder := NewResponseBuilder(c)

	rates, err := h.rates.History(c.Request.Context(), historyLimit(c))
	if err != nil {
		builder.ServiceError(err)
		return
	}

	builder.SuccessOK(rates)
}
