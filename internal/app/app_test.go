//go:build !integration

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guttosm/cargo-quote/config"
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quoteBody = `{"category": "Обычные товары", "quantity": 5, "weight": "10", "length": 40, "width": 30, "height": 30, "declared_value": 500}`

func TestInitializeApp(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(*testing.T, *config.Config)
		expectedStatus int
	}{
		{
			name:           "seeded tariffs serve quotes",
			mutate:         func(t *testing.T, cfg *config.Config) { cfg.Cache.TariffSeedFile = writeSeedFile(t) },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no tariffs loaded",
			mutate:         func(*testing.T, *config.Config) {},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "unreadable seed file does not stop startup",
			mutate: func(t *testing.T, cfg *config.Config) {
				cfg.Cache.TariffSeedFile = t.TempDir() + "/missing.json"
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(t, &cfg)

			a, err := InitializeApp(cfg)
			require.NoError(t, err)
			t.Cleanup(func() { a.Close(context.Background()) })

			req := httptest.NewRequest(http.MethodPost, "/api/quote", bytes.NewBufferString(quoteBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			a.Router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp struct {
				Data model.QuoteRecord `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "1", resp.Data.TariffVersion)
			assert.Equal(t, "125.09", resp.Data.Result.Bag.TotalRegular.StringFixed(2))
		})
	}
}

func TestInitializeApp_InvalidEngineConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Engine.PackagingBasis = "per_pallet"

	a, err := InitializeApp(cfg)
	assert.Error(t, err)
	assert.Nil(t, a)
}
