//go:build integration

package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guttosm/cargo-quote/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp_Integration(t *testing.T) {

	uri := testutil.SharedMongoURI(t)

	t.Run("quotes are served from MongoDB tariffs and recorded", func(t *testing.T) {
		cfg := testConfig()
		cfg.Database.Enabled = true
		cfg.Database.URI = uri
		cfg.Database.DatabaseName = testutil.DatabaseName(t)
		cfg.Cache.TariffSeedFile = writeSeedFile(t)

		a, err := InitializeApp(cfg)
		require.NoError(t, err)
		t.Cleanup(func() { a.Close(context.Background()) })
		assert.Equal(t, "mongodb", a.Database.TariffsSource)

		req := httptest.NewRequest(http.MethodPost, "/api/quote", bytes.NewBufferString(quoteBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		a.Services.Quotes.Wait()
		records, err := a.Database.Quotes.List(context.Background(), 10)
		require.NoError(t, err)
		assert.Len(t, records, 1)

		req = httptest.NewRequest(http.MethodGet, "/readyz", nil)
		w = httptest.NewRecorder()
		a.Router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "mongodb_tariffs_circuit")
	})

	t.Run("restart keeps the stored tariff set", func(t *testing.T) {
		cfg := testConfig()
		cfg.Database.Enabled = true
		cfg.Database.URI = uri
		cfg.Database.DatabaseName = testutil.DatabaseName(t)
		cfg.Cache.TariffSeedFile = writeSeedFile(t)

		first, err := InitializeApp(cfg)
		require.NoError(t, err)
		first.Close(context.Background())

		second, err := InitializeApp(cfg)
		require.NoError(t, err)
		t.Cleanup(func() { second.Close(context.Background()) })

		history, err := second.Database.Tariffs.List(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, SeedOperator, history[0].CreatedBy)
	})
}
