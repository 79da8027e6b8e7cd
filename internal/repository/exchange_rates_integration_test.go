//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewExchangeRateRepository(db)
	pair := model.CurrencyPair{Source: "CNY", Pricing: "USD"}
	base := time.Now().UTC().Truncate(time.Millisecond)

	latest, err := repo.Latest(ctx, pair)
	require.NoError(t, err)
	assert.Nil(t, latest)

	require.NoError(t, repo.Record(ctx, model.ExchangeRate{Pair: pair, Rate: decimal.RequireFromString("7.15"), RecordedAt: base.Add(-time.Hour), Source: "telegram_bot"}))
	require.NoError(t, repo.Record(ctx, model.ExchangeRate{Pair: pair, Rate: decimal.RequireFromString("7.21"), RecordedAt: base, Source: "manual", Notes: "bank rate"}))
	require.NoError(t, repo.Record(ctx, model.ExchangeRate{Pair: model.CurrencyPair{Source: "EUR", Pricing: "USD"}, Rate: decimal.RequireFromString("1.08"), RecordedAt: base}))

	latest, err = repo.Latest(ctx, pair)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "7.21", latest.Rate.String())
	assert.Equal(t, "manual", latest.Source)
	assert.Equal(t, "bank rate", latest.Notes)

	history, err := repo.History(ctx, pair, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "7.15", history[1].Rate.String())
}
