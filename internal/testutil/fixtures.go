// Package testutil provides fixtures and testcontainers setup for tests.
package testutil

import (
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/shopspring/decimal"
)

// GeneralGoods is the category used by the sample density table.
const GeneralGoods = "Обычные товары"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func packaging(additional, cost, unloading string) model.PackagingTariff {
	return model.PackagingTariff{
		AdditionalWeight: dec(additional),
		PackagingCost:    dec(cost),
		UnloadingCost:    dec(unloading),
	}
}

// SampleWeightRows returns two contiguous weight tiers covering [0, 100) kg.
func SampleWeightRows() []model.WeightTariffRow {
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

// SampleDensityRows returns density tiers for general goods and electronics.
func SampleDensityRows() []model.DensityTariffRow {
	row := func(category, lo, hi, fast, regular string) model.DensityTariffRow {
		return model.DensityTariffRow{
			Category:                 category,
			MinDensity:               dec(lo),
			MaxDensity:               dec(hi),
			FastDeliveryCostPerKg:    dec(fast),
			RegularDeliveryCostPerKg: dec(regular),
		}
	}
	return []model.DensityTariffRow{
		row(GeneralGoods, "100", "250", "3.5", "2.6"),
		row(GeneralGoods, "250", "300", "3.0", "2.2"),
		row(GeneralGoods, "300", "1000", "2.5", "1.9"),
		row("Электроника", "0", "1000", "4.0", "3.1"),
	}
}

// SampleSnapshot wraps the sample tables in a snapshot.
func SampleSnapshot(version string) *model.TariffSnapshot {
	return &model.TariffSnapshot{
		Version:     version,
		WeightRows:  SampleWeightRows(),
		DensityRows: SampleDensityRows(),
	}
}

// SampleRate returns a CNY/USD rate of 7.20.
func SampleRate() *model.ExchangeRate {
	return &model.ExchangeRate{
		Pair:   model.CurrencyPair{Source: "CNY", Pricing: "USD"},
		Rate:   dec("7.20"),
		Source: "manual",
	}
}
