package engine

import (
	"fmt"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/shopspring/decimal"
)

// composePackaging prices one packaging method. Only the delivery costs are
// rounded before summing; everything else keeps full precision until output.
func (e *Engine) composePackaging(
	method model.PackagingMethod,
	vol Volumetrics,
	costPricing decimal.Decimal,
	quantity int,
	weightRow model.WeightTariffRow,
	densityRow model.DensityTariffRow,
) (model.PackagingQuote, error) {
	tariff, ok := weightRow.Packaging(method)
	if !ok {
		return model.PackagingQuote{}, fmt.Errorf("unknown packaging method %q", method)
	}

	packedWeight := vol.TotalWeight.Add(tariff.AdditionalWeight)
	if !packedWeight.IsPositive() {
		return model.PackagingQuote{}, invalid("additional_weight", fmt.Sprintf("%s packed weight must be greater than zero", method))
	}

	costPerKg := costPricing.DivRound(packedWeight, e.cfg.DivisionPrecision)
	rate := e.cfg.InsurancePolicy.Resolve(costPerKg)
	insurance := costPricing.Mul(rate)

	fast := Round(densityRow.FastDeliveryCostPerKg.Mul(packedWeight), e.cfg.OutputPlaces)
	regular := Round(densityRow.RegularDeliveryCostPerKg.Mul(packedWeight), e.cfg.OutputPlaces)

	packaging, unloading := tariff.PackagingCost, tariff.UnloadingCost
	if e.cfg.PackagingBasis == PerBox {
		qty := decimal.NewFromInt(int64(quantity))
		packaging = packaging.Mul(qty)
		unloading = unloading.Mul(qty)
	}

	fixed := packaging.Add(unloading).Add(insurance)
	places := e.cfg.OutputPlaces

	return model.PackagingQuote{
		Method:              method,
		PackedWeight:        Round(packedWeight, places),
		PackagingCost:       Round(packaging, places),
		UnloadingCost:       Round(unloading, places),
		InsuranceRate:       rate,
		InsuranceRateLabel:  FormatRate(rate),
		Insurance:           Round(insurance, places),
		DeliveryCostFast:    fast,
		DeliveryCostRegular: regular,
		TotalFast:           Round(fixed.Add(fast), places),
		TotalRegular:        Round(fixed.Add(regular), places),
	}, nil
}
