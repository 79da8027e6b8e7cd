package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/metrics"
	"github.com/guttosm/cargo-quote/internal/middleware"
	"github.com/guttosm/cargo-quote/internal/service"
	"github.com/guttosm/cargo-quote/internal/service/cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	// GzipLevel 0 disables compression.
	GzipLevel           int
	APIKeys             map[string]bool
	EnableAuth          bool
	EnableIdempotency   bool
	IdempotencyStore    cache.ResponseStore
	CORSOrigins         []string
	SwaggerUser         string
	SwaggerPass         string
	LoggingService      service.LoggingService
	AuthService         service.AuthService
	QuoteService        service.QuoteService
	TariffService       service.TariffService
	ExchangeRateService service.ExchangeRateService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:  100,
		RateWindow: time.Minute,
		GzipLevel:  middleware.DefaultGzipLevel,
		EnableAuth: false,
	}
}

// NewRouter creates and configures the Gin router for the cargo quote service.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)

	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	if cfg.QuoteService == nil || cfg.TariffService == nil || cfg.ExchangeRateService == nil {
		return router
	}
	quoteRoutes := NewQuoteRoutes(cfg.QuoteService, cfg.TariffService, cfg.ExchangeRateService)

	public := api.Group("")
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		public.Use(middleware.APIKeyAuth(cfg.APIKeys))
		if cfg.RateLimit > 0 {
			keyLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
			public.Use(keyLimiter.Limit(middleware.KeyByCaller))
		}
	}
	quoteRoutes.RegisterPublicRoutes(public)

	if cfg.AuthService != nil {
		registerAuthenticatedRoutes(api, quoteRoutes, &cfg)
	} else {
		quoteRoutes.RegisterProtectedRoutes(public, &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(cfg.GzipLevel),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	router.Use(func(c *gin.Context) {
		c.Set("logging_service", cfg.LoggingService)
		c.Next()
	})

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.Limit(middleware.KeyByIP))
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler == nil {
		healthHandler = NewHealthHandler()
	}
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.TimeoutWithDuration(cfg.RequestTimeout))
	}

	if cfg.EnableIdempotency {
		idempotencyCfg := middleware.DefaultIdempotencyConfig()
		if cfg.IdempotencyStore != nil {
			idempotencyCfg.Store = cfg.IdempotencyStore
		}
		api.Use(middleware.Idempotency(idempotencyCfg))
	}
}

// registerAuthenticatedRoutes registers the token endpoints and puts the
// administrative routes behind JWT auth and the admin role.
func registerAuthenticatedRoutes(api *gin.RouterGroup, quoteRoutes *QuoteRoutes, cfg *RouterConfig) {
	authRoutes := NewAuthRoutes(cfg.AuthService)
	authRoutes.RegisterPublicRoutes(api)

	protected := authRoutes.GetProtectedGroup(api, cfg)
	authRoutes.RegisterProtectedRoutes(protected, cfg)

	admin := protected.Group("")
	admin.Use(middleware.RequireRole(dto.RoleAdmin))
	quoteRoutes.RegisterProtectedRoutes(admin, cfg)
}
