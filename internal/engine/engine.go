// Package engine prices parcel shipments from China.
//
// The engine is a pure function of its inputs: a validated shipment, a
// snapshot of the weight and density tariff tables, and an exchange rate.
// It keeps no state between calls and is safe for concurrent use. All
// arithmetic uses decimals with the precision set in Config; values are
// rounded only when written to the result.
package engine

import (
	"errors"
	"fmt"

	"github.com/guttosm/cargo-quote/internal/domain/model"
)

// Engine computes quotes with a fixed Config.
type Engine struct {
	cfg Config
}

// New validates cfg and returns an Engine.
func New(cfg Config) (*Engine, error) {
	if cfg.DivisionPrecision < 6 {
		return nil, fmt.Errorf("division precision must be at least 6, got %d", cfg.DivisionPrecision)
	}
	if cfg.OutputPlaces < 0 || cfg.OutputPlaces > cfg.DivisionPrecision {
		return nil, fmt.Errorf("output places must be between 0 and %d, got %d", cfg.DivisionPrecision, cfg.OutputPlaces)
	}
	if err := cfg.InsurancePolicy.Validate(); err != nil {
		return nil, err
	}
	if cfg.PackagingBasis != PerShipment && cfg.PackagingBasis != PerBox {
		return nil, fmt.Errorf("unknown packaging basis %q", cfg.PackagingBasis)
	}
	if !isCurrencyCode(cfg.PricingCurrency) {
		return nil, errors.New("pricing currency must be a three-letter currency code")
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Compute prices a shipment against the given tariff tables and exchange
// rate. The tables are only read; a nil rate is accepted when the shipment
// is already stated in the pricing currency.
func (e *Engine) Compute(
	input model.ShipmentInput,
	weights []model.WeightTariffRow,
	densities []model.DensityTariffRow,
	rate *model.ExchangeRate,
) (*model.QuoteResult, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	vol, err := Measure(input, e.cfg.DivisionPrecision)
	if err != nil {
		return nil, err
	}

	costPricing, applied, err := Convert(input.DeclaredValue, rate, input.SourceCurrency, e.cfg.PricingCurrency, e.cfg.DivisionPrecision)
	if err != nil {
		return nil, err
	}

	weightRow, err := FindWeightRow(weights, vol.TotalWeight)
	if err != nil {
		return nil, err
	}
	densityRow, err := FindDensityRow(densities, input.Category, vol.Density)
	if err != nil {
		return nil, err
	}

	packagings := make(map[model.PackagingMethod]model.PackagingQuote, len(model.PackagingMethods))
	for _, m := range model.PackagingMethods {
		q, err := e.composePackaging(m, vol, costPricing, input.Quantity, weightRow, densityRow)
		if err != nil {
			return nil, err
		}
		packagings[m] = q
	}

	rateSource := ""
	if rate != nil && input.SourceCurrency != e.cfg.PricingCurrency {
		rateSource = rate.Source
	}

	return e.assemble(quoteParts{
		input:       input,
		vol:         vol,
		costPricing: costPricing,
		appliedRate: applied,
		rateSource:  rateSource,
		packagings:  packagings,
	}), nil
}

// ComputeSnapshot is Compute over a TariffSnapshot.
func (e *Engine) ComputeSnapshot(input model.ShipmentInput, snapshot *model.TariffSnapshot, rate *model.ExchangeRate) (*model.QuoteResult, error) {
	if snapshot == nil {
		return e.Compute(input, nil, nil, rate)
	}
	return e.Compute(input, snapshot.WeightRows, snapshot.DensityRows, rate)
}
