// Package app provides router configuration.
package app

import (
	"context"

	"github.com/guttosm/cargo-quote/config"
	"github.com/guttosm/cargo-quote/internal/http"
	"github.com/guttosm/cargo-quote/internal/service/cache"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the health handler and router configuration.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	healthHandler := http.NewHealthHandler()

	for name, checker := range db.Checkers {
		healthHandler.RegisterChecker(name, checker)
	}
	for name, cb := range db.CircuitBreakers {
		healthHandler.RegisterCircuitBreaker(name, cb)
	}
	if services.redis != nil {
		healthHandler.RegisterChecker("redis", services.redis)
	}

	// not ready until a tariff set is loaded
	tariffs := services.Tariffs
	healthHandler.RegisterChecker("tariffs", http.HealthCheckFunc(func(ctx context.Context) error {
		_, err := tariffs.Snapshot(ctx)
		return err
	}))
	registerReadinessInfo(healthHandler, services)

	routerCfg := http.RouterConfig{
		RateLimit:           cfg.Server.RateLimit,
		RateWindow:          cfg.Server.RateWindow,
		RequestTimeout:      cfg.Server.RequestTimeout,
		GzipLevel:           cfg.Server.GzipLevel,
		EnableAuth:          cfg.Auth.Enabled,
		APIKeys:             cfg.Auth.APIKeys,
		EnableIdempotency:   true,
		IdempotencyStore:    services.Responses,
		CORSOrigins:         cfg.Server.CORSOrigins,
		SwaggerUser:         cfg.Server.SwaggerUser,
		SwaggerPass:         cfg.Server.SwaggerPass,
		LoggingService:      db.LoggingService,
		AuthService:         services.Auth,
		QuoteService:        services.Quotes,
		TariffService:       services.Tariffs,
		ExchangeRateService: services.ExchangeRates,
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}

// registerReadinessInfo reports the active tariff version, the exchange rate
// in use and quote cache counters on /readyz.
func registerReadinessInfo(h *http.HealthHandler, services *ServiceComponents) {
	tariffs := services.Tariffs
	h.RegisterInfo("tariff_version", func(ctx context.Context) interface{} {
		snapshot, err := tariffs.Snapshot(ctx)
		if err != nil || snapshot == nil {
			return nil
		}
		return snapshot.Version
	})

	if rates := services.ExchangeRates; rates != nil {
		h.RegisterInfo("exchange_rate", func(ctx context.Context) interface{} {
			rate, err := rates.Current(ctx)
			if err != nil || rate == nil {
				return nil
			}
			return map[string]string{"rate": rate.Rate.String(), "source": rate.Source}
		})
	}

	if withMetrics, ok := services.QuoteCache.(cache.CacheWithMetrics); ok {
		h.RegisterInfo("quote_cache", func(context.Context) interface{} {
			return withMetrics.Metrics()
		})
	}
}
