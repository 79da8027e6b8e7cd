package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/middleware"
	"github.com/guttosm/cargo-quote/internal/service"
)

// TariffHandler provides HTTP handlers for tariff table routes.
type TariffHandler struct {
	tariffs service.TariffService
}

// NewTariffHandler creates a new TariffHandler instance.
func NewTariffHandler(tariffs service.TariffService) *TariffHandler {
	return &TariffHandler{tariffs: tariffs}
}

// GetTariffs handles GET /api/tariffs requests.
//
// @Summary      Get active tariff tables
// @Description  Returns the active weight and density tables with their version
// @Tags         Tariffs
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.TariffSnapshot} "Active tariff tables"
// @Failure      503 {object} dto.ErrorResponse "Tariffs not loaded or store unavailable"
// @Router       /api/tariffs [get]
func (h *TariffHandler) GetTariffs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	snapshot, err := h.tariffs.Snapshot(c.Request.Context())
	if err != nil {
		builder.ServiceError(err)
		return
	}

	builder.SuccessOK(snapshot)
}

// ImportTariffs handles PUT /api/tariffs requests.
//
// @Summary      Import tariff tables
// @Description  Validates and replaces both tariff tables as a new version. Rows must not overlap or leave gaps. Cached quotes are dropped.
// @Tags         Tariffs
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.ImportTariffsRequest true "Weight and density tables"
// @Success      200 {object} dto.SuccessResponse{data=model.TariffSnapshot} "Imported tariff tables"
// @Failure      400 {object} dto.ErrorResponse "Bad request - malformed table"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      409 {object} dto.ErrorResponse "Store is read-only"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/tariffs [put]
func (h *TariffHandler) ImportTariffs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.ImportTariffsRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	operator, _ := middleware.OperatorFromContext(c)
	weights, densities := req.Tables()
	snapshot, err := h.tariffs.Import(c.Request.Context(), weights, densities, operator)
	if err != nil {
		auditError(c, model.ActionTariffImport, "Tariff import rejected", err, map[string]interface{}{
			"weight_rows":  len(req.WeightRows),
			"density_rows": len(req.DensityRows),
		})
		builder.ServiceError(err)
		return
	}

	audit(c, model.ActionTariffImport, "Tariff tables imported", map[string]interface{}{
		"version":      snapshot.Version,
		"weight_rows":  len(snapshot.WeightRows),
		"density_rows": len(snapshot.DensityRows),
	})

	builder.SuccessOK(snapshot)
}

// TariffHistory handles GET /api/tariffs/history requests.
//
// @Summary      List tariff versions
// @Description  Returns imported tariff versions, newest first
// @Tags         Tariffs
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        limit query int false "Maximum number of versions" default(50)
// @Success      200 {object} dto.SuccessResponse{data=[]model.TariffSetSummary} "Tariff history"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/tariffs/history [get]
func (h *TariffHandler) TariffHistory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	history, err := h.tariffs.History(c.Request.Context(), historyLimit(c))
	if err != nil {
		builder.ServiceError(err)
		return
	}

	builder.SuccessOK(history)
}
