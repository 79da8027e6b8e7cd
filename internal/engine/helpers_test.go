package engine

import (
	"testing"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const generalGoods = "Обычные товары"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func packaging(additional, cost, unloading string) model.PackagingTariff {
	return model.PackagingTariff{
		AdditionalWeight: dec(additional),
		PackagingCost:    dec(cost),
		UnloadingCost:    dec(unloading),
	}
}

func sampleWeights() []model.WeightTariffRow {
	return []model.WeightTariffRow{
		{
			MinWeight: dec("0"), MaxWeight: dec("50"),
			Bag: packaging("1", "3", "2"), Corners: packaging("2", "5", "2"), Frame: packaging("6", "10", "4"),
		},
		{
			MinWeight: dec("50"), MaxWeight: dec("100"),
			Bag: packaging("2", "6", "4"), Corners: packaging("3", "8", "4"), Frame: packaging("10", "15", "6"),
		},
	}
}

func sampleDensities() []model.DensityTariffRow {
	return []model.DensityTariffRow{
		{Category: generalGoods, MinDensity: dec("100"), MaxDensity: dec("250"), FastDeliveryCostPerKg: dec("3.5"), RegularDeliveryCostPerKg: dec("2.6")},
		{Category: generalGoods, MinDensity: dec("250"), MaxDensity: dec("300"), FastDeliveryCostPerKg: dec("3.0"), RegularDeliveryCostPerKg: dec("2.2")},
		{Category: generalGoods, MinDensity: dec("300"), MaxDensity: dec("1000"), FastDeliveryCostPerKg: dec("2.5"), RegularDeliveryCostPerKg: dec("1.9")},
		{Category: "Электроника", MinDensity: dec("0"), MaxDensity: dec("1000"), FastDeliveryCostPerKg: dec("4.0"), RegularDeliveryCostPerKg: dec("3.1")},
	}
}

func sampleRate() *model.ExchangeRate {
	return &model.ExchangeRate{
		Pair:   model.CurrencyPair{Source: "CNY", Pricing: "USD"},
		Rate:   dec("7.20"),
		Source: "manual",
	}
}

func sampleInput() model.ShipmentInput {
	return model.ShipmentInput{
		Category:       generalGoods,
		WeightMode:     model.WeightModePerBox,
		Quantity:       5,
		WeightPerBox:   dec("10"),
		Length:         dec("40"),
		Width:          dec("30"),
		Height:         dec("30"),
		DeclaredValue:  dec("500"),
		SourceCurrency: "CNY",
	}
}

func newTestEngine(t *testing.T, mutate ...func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}
