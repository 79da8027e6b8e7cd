//go:build !integration

package app

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/guttosm/cargo-quote/config"
	"github.com/guttosm/cargo-quote/internal/events"
	"github.com/guttosm/cargo-quote/internal/service/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*config.Config)
		validate func(*testing.T, *ServiceComponents)
	}{
		{
			name:   "in-process cache by default",
			mutate: func(*config.Config) {},
			validate: func(t *testing.T, s *ServiceComponents) {
				assert.IsType(t, &cache.ShardedQuoteCache{}, s.QuoteCache)
				assert.IsType(t, &cache.MemoryResponseStore{}, s.Responses)
				assert.Equal(t, events.NoopPublisher{}, s.Publisher)
				assert.Nil(t, s.Auth)
				assert.Nil(t, s.redis)
			},
		},
		{
			name:   "cache disabled",
			mutate: func(cfg *config.Config) { cfg.Cache.Size = 0 },
			validate: func(t *testing.T, s *ServiceComponents) {
				assert.Nil(t, s.QuoteCache)
			},
		},
		{
			name: "unreachable redis falls back to the in-process cache",
			mutate: func(cfg *config.Config) {
				cfg.Cache.Backend = "redis"
				cfg.Redis.URL = "redis://127.0.0.1:1/0"
			},
			validate: func(t *testing.T, s *ServiceComponents) {
				assert.IsType(t, &cache.ShardedQuoteCache{}, s.QuoteCache)
				assert.Nil(t, s.redis)
			},
		},
		{
			name: "kafka publisher when events are enabled",
			mutate: func(cfg *config.Config) {
				cfg.Events = config.EventsConfig{Enabled: true, Brokers: "localhost:9092", Topic: "quote.computed"}
			},
			validate: func(t *testing.T, s *ServiceComponents) {
				assert.IsType(t, &events.KafkaPublisher{}, s.Publisher)
			},
		},
		{
			name: "auth service with operators",
			mutate: func(cfg *config.Config) {
				cfg.Auth.Enabled = true
				cfg.Auth.Operators = []config.Operator{{Name: "anna", PasswordHash: "$2a$10$abc", Role: "admin"}}
			},
			validate: func(t *testing.T, s *ServiceComponents) {
				assert.NotNil(t, s.Auth)
			},
		},
		{
			name:   "no auth service without operators",
			mutate: func(cfg *config.Config) { cfg.Auth.Enabled = true },
			validate: func(t *testing.T, s *ServiceComponents) {
				assert.Nil(t, s.Auth)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			s, err := InitializeServices(cfg, InitializeDatabase(cfg))
			require.NoError(t, err)
			t.Cleanup(s.Close)

			require.NotNil(t, s.Engine)
			require.NotNil(t, s.Quotes)
			assert.Equal(t, "CNY", s.ExchangeRates.Pair().Source)
			assert.Equal(t, "USD", s.ExchangeRates.Pair().Pricing)
			tt.validate(t, s)
		})
	}
}

func TestInitializeServices_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Cache.Backend = "redis"
	cfg.Redis.URL = "redis://" + mr.Addr()

	s, err := InitializeServices(cfg, InitializeDatabase(cfg))
	require.NoError(t, err)
	t.Cleanup(s.Close)

	assert.IsType(t, &cache.RedisQuoteCache{}, s.QuoteCache)
	assert.IsType(t, &cache.RedisResponseStore{}, s.Responses)
	require.NotNil(t, s.redis)
	assert.NoError(t, s.redis.HealthCheck(context.Background()))
}

func TestInitializeServices_InvalidEngineConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown insurance policy", func(cfg *config.Config) { cfg.Engine.InsurancePolicy = "flat" }},
		{"unknown packaging basis", func(cfg *config.Config) { cfg.Engine.PackagingBasis = "per_pallet" }},
		{"invalid fallback rate", func(cfg *config.Config) { cfg.Engine.ExchangeRateFallback = "-1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			_, err := InitializeServices(cfg, InitializeDatabase(cfg))
			assert.Error(t, err)
		})
	}
}
