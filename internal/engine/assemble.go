package engine

import (
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round rounds half-up to places decimal places. Rounding an already rounded
// value returns it unchanged.
func Round(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// FormatRate renders a fractional rate as a percentage, e.g. 0.015 -> "1.5%".
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(hundred).Round(2).String() + "%"
}

// quoteParts carries everything assemble needs from the earlier stages.
type quoteParts struct {
	input       model.ShipmentInput
	vol         Volumetrics
	costPricing decimal.Decimal
	appliedRate decimal.Decimal
	rateSource  string
	packagings  map[model.PackagingMethod]model.PackagingQuote
}

// assemble builds the final QuoteResult. The general insurance figure uses
// the unpacked total weight as its cost-per-kilogram basis.
func (e *Engine) assemble(p quoteParts) *model.QuoteResult {
	places := e.cfg.OutputPlaces

	costPerKg := p.costPricing.DivRound(p.vol.TotalWeight, e.cfg.DivisionPrecision)
	rate := e.cfg.InsurancePolicy.Resolve(costPerKg)

	return &model.QuoteResult{
		General: model.GeneralInformation{
			Category:             p.input.Category,
			TotalWeight:          Round(p.vol.TotalWeight, places),
			Density:              Round(p.vol.Density, places),
			TotalVolume:          Round(p.vol.TotalVolume, places),
			BoxCount:             p.input.Quantity,
			SourceCurrency:       p.input.SourceCurrency,
			PricingCurrency:      e.cfg.PricingCurrency,
			DeclaredValue:        Round(p.input.DeclaredValue, places),
			DeclaredValuePricing: Round(p.costPricing, places),
			ExchangeRate:         p.appliedRate,
			ExchangeRateSource:   p.rateSource,
			InsuranceRate:        rate,
			InsuranceRateLabel:   FormatRate(rate),
			InsuranceAmount:      Round(p.costPricing.Mul(rate), places),
		},
		Bag:     p.packagings[model.PackagingBag],
		Corners: p.packagings[model.PackagingCorners],
		Frame:   p.packagings[model.PackagingFrame],
	}
}
