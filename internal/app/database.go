// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/guttosm/cargo-quote/config"
	"github.com/guttosm/cargo-quote/internal/circuitbreaker"
	"github.com/guttosm/cargo-quote/internal/http"
	"github.com/guttosm/cargo-quote/internal/metrics"
	"github.com/guttosm/cargo-quote/internal/repository"
	"github.com/guttosm/cargo-quote/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds the tariff, rate, quote and log stores.
//
// Precedence for tariffs and exchange rates is Postgres, then MongoDB, then
// process memory. Quote history lives in MongoDB when it is enabled and in
// memory otherwise. Request and audit logs are only persisted to MongoDB.
type DatabaseComponents struct {
	Tariffs        repository.TariffRepositoryInterface
	ExchangeRates  repository.ExchangeRateRepositoryInterface
	Quotes         repository.QuoteRepositoryInterface
	LoggingService service.LoggingService

	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker
	Checkers        map[string]http.HealthChecker

	// TariffsSource names the store serving tariffs: "postgres", "mongodb" or "memory".
	TariffsSource string

	mongo    *repository.MongoDB
	postgres *repository.Postgres
}

// InitializeDatabase connects the configured stores. A store that cannot be
// reached is logged and skipped, so the service still starts on the next
// store in line.
func InitializeDatabase(cfg config.Config) *DatabaseComponents {
	components := &DatabaseComponents{
		Tariffs:         repository.NewMemoryTariffRepository(),
		ExchangeRates:   repository.NewMemoryExchangeRateRepository(),
		Quotes:          repository.NewMemoryQuoteRepository(cfg.Cache.Size),
		CircuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
		Checkers:        make(map[string]http.HealthChecker),
		TariffsSource:   "memory",
	}

	if cfg.Database.Enabled {
		components.connectMongoDB(cfg.Database)
	}
	if cfg.Postgres.Enabled {
		components.connectPostgres(cfg.Postgres, cfg.Database)
	}

	log.Info().Str("tariffs", components.TariffsSource).Msg("Rate table store selected")
	return components
}

func (d *DatabaseComponents) connectMongoDB(cfg config.DatabaseConfig) {
	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")
	d.mongo = db
	d.Checkers["mongodb"] = db

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.SetLogsTTL(ctx, cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	tariffsCB := d.circuitBreaker(cfg, "mongodb_tariffs")
	ratesCB := d.circuitBreaker(cfg, "mongodb_exchange_rates")
	quotesCB := d.circuitBreaker(cfg, "mongodb_quotes")
	logsCB := d.circuitBreaker(cfg, "mongodb_logs")

	d.Tariffs = repository.NewTariffRepositoryWithCircuitBreaker(repository.NewTariffRepository(db), tariffsCB)
	d.ExchangeRates = repository.NewExchangeRateRepositoryWithCircuitBreaker(repository.NewExchangeRateRepository(db), ratesCB)
	d.Quotes = repository.NewQuoteRepositoryWithCircuitBreaker(repository.NewQuoteRepository(db), quotesCB)
	d.LoggingService = service.NewLoggingService(
		repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB))
	d.TariffsSource = "mongodb"
}

func (d *DatabaseComponents) connectPostgres(cfg config.PostgresConfig, breakerCfg config.DatabaseConfig) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := repository.NewPostgres(ctx, repository.PostgresConfig{
		URL:      cfg.URL,
		Schema:   cfg.Schema,
		MaxConns: cfg.MaxConns,
	})
	if err != nil {
		log.Error().Err(err).Str("fallback", d.TariffsSource).Msg("Failed to connect to Postgres - continuing with fallback store")
		return
	}

	log.Info().Str("schema", cfg.Schema).Msg("Connected to Postgres")
	d.postgres = pg
	d.Checkers["postgres"] = pg

	d.Tariffs = repository.NewTariffRepositoryWithCircuitBreaker(pg, d.circuitBreaker(breakerCfg, "postgres_tariffs"))
	d.ExchangeRates = repository.NewExchangeRateRepositoryWithCircuitBreaker(pg, d.circuitBreaker(breakerCfg, "postgres_exchange_rates"))
	d.TariffsSource = "postgres"
}

// circuitBreaker creates and registers a breaker that reports its state to Prometheus.
func (d *DatabaseComponents) circuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        repository.IsGatewayFailure,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
		},
	})
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	d.CircuitBreakers[name] = cb
	return cb
}

// Close releases database connections.
func (d *DatabaseComponents) Close(ctx context.Context) {
	if d == nil {
		return
	}
	if d.postgres != nil {
		d.postgres.Close()
	}
	if d.mongo != nil {
		if err := d.mongo.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}
}
