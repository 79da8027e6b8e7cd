//go:build !integration

package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestTariffSetDocument_PreservesDecimals(t *testing.T) {
	weights := testutil.SampleWeightRows()
	weights[0].Bag.PackagingCost = decimal.RequireFromString("3.333333333333333333")

	doc := TariffSetDocument{
		Version:     7,
		Active:      true,
		WeightRows:  weightDocuments(weights),
		DensityRows: densityDocuments(testutil.SampleDensityRows()),
		CreatedAt:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	snapshot, err := doc.toSnapshot()
	require.NoError(t, err)

	assert.Equal(t, "7", snapshot.Version)
	assert.Equal(t, doc.CreatedAt, snapshot.LoadedAt)
	require.Len(t, snapshot.WeightRows, 2)
	assert.Equal(t, "3.333333333333333333", snapshot.WeightRows[0].Bag.PackagingCost.String())
	assert.True(t, weights[1].Frame.AdditionalWeight.Equal(snapshot.WeightRows[1].Frame.AdditionalWeight))
	assert.Equal(t, testutil.SampleDensityRows()[3].Category, snapshot.DensityRows[3].Category)

	summary := doc.summary()
	assert.Equal(t, model.TariffSetSummary{
		Version: "7", Active: true, CreatedAt: doc.CreatedAt, WeightRows: 2, DensityRows: 4,
	}, summary)
}

func TestTariffSetDocument_CorruptDecimal(t *testing.T) {
	doc := TariffSetDocument{
		Version:    3,
		WeightRows: weightDocuments(testutil.SampleWeightRows()),
	}
	doc.WeightRows[1].Corners.UnloadingCost = "four"

	_, err := doc.toSnapshot()

	assert.ErrorIs(t, err, ErrCorruptRecord)
	assert.Contains(t, err.Error(), "weight row 1")
	assert.Contains(t, err.Error(), "corners.unloading_cost")
}

func TestTariffSetDocument_BSONFieldNames(t *testing.T) {
	raw, err := bson.Marshal(TariffSetDocument{
		Version:     1,
		DensityRows: densityDocuments(testutil.SampleDensityRows()[:1]),
	})
	require.NoError(t, err)

	var decoded bson.M
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	rows, ok := decoded["density_rows"].(bson.A)
	require.True(t, ok)
	first, ok := rows[0].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "3.5", first["fast_delivery_cost_per_kg"])
}

func TestExchangeRateDocument_ToModel(t *testing.T) {
	doc := ExchangeRateDocument{
		CurrencyPair: "CNY/USD",
		Rate:         "7.2",
		Source:       "telegram_bot",
		Notes:        "morning update",
	}

	rate, err := doc.toModel()
	require.NoError(t, err)
	assert.Equal(t, model.CurrencyPair{Source: "CNY", Pricing: "USD"}, rate.Pair)
	assert.Equal(t, "7.2", rate.Rate.String())
	assert.Equal(t, "morning update", rate.Notes)

	_, err = ExchangeRateDocument{CurrencyPair: "CNYUSD", Rate: "7.2"}.toModel()
	assert.ErrorIs(t, err, ErrCorruptRecord)

	_, err = ExchangeRateDocument{CurrencyPair: "CNY/USD", Rate: ""}.toModel()
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestNewQuoteDocument(t *testing.T) {
	record := &model.QuoteRecord{
		ID:            "q-1",
		RequestID:     "req-1",
		TariffVersion: "4",
		Result: model.QuoteResult{
			General: model.GeneralInformation{Category: testutil.GeneralGoods, TotalWeight: decimal.NewFromInt(50)},
			Bag:     model.PackagingQuote{Method: model.PackagingBag, TotalRegular: decimal.RequireFromString("125.09")},
			Corners: model.PackagingQuote{Method: model.PackagingCorners, TotalRegular: decimal.RequireFromString("129.29")},
			Frame:   model.PackagingQuote{Method: model.PackagingFrame, TotalRegular: decimal.RequireFromString("153.69")},
		},
	}

	doc, err := newQuoteDocument(record)
	require.NoError(t, err)

	assert.Equal(t, "q-1", doc.QuoteID)
	assert.Equal(t, "bag", doc.Cheapest)
	assert.Equal(t, "50", doc.TotalWeight)
	assert.False(t, doc.CreatedAt.IsZero())

	var decoded model.QuoteRecord
	require.NoError(t, json.Unmarshal([]byte(doc.Payload), &decoded))
	assert.Equal(t, "125.09", decoded.Result.Bag.TotalRegular.String())
}
