package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/service"
)

// QuoteRoutes handles quote, tariff and exchange rate route registration.
type QuoteRoutes struct {
	handler       *Handler
	tariffHandler *TariffHandler
	rateHandler   *ExchangeRateHandler
}

// NewQuoteRoutes creates a new QuoteRoutes instance.
func NewQuoteRoutes(quotes service.QuoteService, tariffs service.TariffService, rates service.ExchangeRateService) *QuoteRoutes {
	return &QuoteRoutes{
		handler:       NewHandler(quotes, tariffs),
		tariffHandler: NewTariffHandler(tariffs),
		rateHandler:   NewExchangeRateHandler(rates),
	}
}

// RegisterPublicRoutes registers the quote and reference data routes.
func (r *QuoteRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/quote", r.handler.Quote)
	rg.GET("/quote", r.handler.QuoteQuery)
	rg.GET("/categories", r.handler.Categories)
	rg.GET("/tariffs", r.tariffHandler.GetTariffs)
	rg.GET("/exchange-rates/latest", r.rateHandler.Latest)
}

// RegisterProtectedRoutes registers the administrative routes. The caller
// applies authentication and role checks to rg. The audit log is served
// only when log persistence is configured.
func (r *QuoteRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.PUT("/tariffs", r.tariffHandler.ImportTariffs)
	rg.GET("/tariffs/history", r.tariffHandler.TariffHistory)
	rg.POST("/exchange-rates", r.rateHandler.Record)
	rg.GET("/exchange-rates/history", r.rateHandler.History)
	rg.GET("/quotes/history", r.handler.QuoteHistory)

	if cfg != nil && cfg.LoggingService != nil {
		rg.GET("/audit", NewAuditHandler(cfg.LoggingService).List)
	}
}
