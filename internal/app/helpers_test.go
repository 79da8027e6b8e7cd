package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/cargo-quote/config"
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testConfig mirrors the defaults of config.Load with every store disabled.
func testConfig() config.Config {
	return config.Config{
		Log: config.LogConfig{Level: "error"},
		Server: config.ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 10 * time.Second,
		},
		Cache: config.CacheConfig{
			Size:      100,
			TTL:       time.Minute,
			TariffTTL: time.Minute,
			Backend:   "memory",
		},
		Auth: config.AuthConfig{
			JWTSecretKey:     "test-secret",
			JWTRefreshSecret: "test-refresh-secret",
			AccessTokenTTL:   15 * time.Minute,
			RefreshTokenTTL:  time.Hour,
		},
		Database: config.DatabaseConfig{
			DatabaseName:                   "cargo_quote",
			LogsTTL:                        24 * time.Hour,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
		Redis: config.RedisConfig{KeyPrefix: "cargo-quote:"},
		Engine: config.EngineConfig{
			InsurancePolicy:      "three-tier",
			DecimalPrecision:     16,
			OutputPlaces:         2,
			PackagingBasis:       "per_shipment",
			PricingCurrency:      "USD",
			SourceCurrency:       "CNY",
			ExchangeRateFallback: "7.2",
		},
	}
}

// writeSeedFile writes the sample tariff tables in the seed file layout.
func writeSeedFile(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(struct {
		WeightRows  []model.WeightTariffRow  `json:"weight_rows"`
		DensityRows []model.DensityTariffRow `json:"density_rows"`
	}{testutil.SampleWeightRows(), testutil.SampleDensityRows()})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tariffs.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
