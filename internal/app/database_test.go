//go:build !integration

package app

import (
	"context"
	"testing"

	"github.com/guttosm/cargo-quote/internal/circuitbreaker"
	"github.com/guttosm/cargo-quote/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDatabase(t *testing.T) {
	t.Run("memory stores when nothing is enabled", func(t *testing.T) {
		db := InitializeDatabase(testConfig())
		defer db.Close(context.Background())

		assert.Equal(t, "memory", db.TariffsSource)
		assert.IsType(t, &repository.MemoryTariffRepository{}, db.Tariffs)
		assert.IsType(t, &repository.MemoryExchangeRateRepository{}, db.ExchangeRates)
		assert.IsType(t, &repository.MemoryQuoteRepository{}, db.Quotes)
		assert.Nil(t, db.LoggingService)
		assert.Empty(t, db.CircuitBreakers)
		assert.Empty(t, db.Checkers)
	})

	t.Run("unreachable postgres falls back", func(t *testing.T) {
		cfg := testConfig()
		cfg.Postgres.Enabled = true
		cfg.Postgres.URL = "postgres://%zz"

		db := InitializeDatabase(cfg)
		defer db.Close(context.Background())

		assert.Equal(t, "memory", db.TariffsSource)
		assert.NotContains(t, db.Checkers, "postgres")
	})
}

func TestDatabaseComponents_CircuitBreaker(t *testing.T) {
	db := InitializeDatabase(testConfig())
	cfg := testConfig().Database
	cfg.CircuitBreakerFailureThreshold = 1

	cb := db.circuitBreaker(cfg, "mongodb_tariffs")
	require.Same(t, cb, db.CircuitBreakers["mongodb_tariffs"])
	assert.Equal(t, "mongodb_tariffs", cb.Name())

	// read-only rejections are not connectivity failures
	_ = cb.Execute(context.Background(), func() error { return repository.ErrReadOnly })
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())

	_ = cb.Execute(context.Background(), func() error { return assert.AnError })
	assert.Equal(t, circuitbreaker.StateOpen, cb.State())
}

func TestDatabaseComponents_Close(t *testing.T) {
	var db *DatabaseComponents
	assert.NotPanics(t, func() { db.Close(context.Background()) })
}
