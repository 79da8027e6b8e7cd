package engine

import (
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Volumetrics holds the derived physical measures of a shipment.
type Volumetrics struct {
	// VolumePerBox is zero when the shipment was given as totals.
	VolumePerBox decimal.Decimal
	TotalVolume  decimal.Decimal
	TotalWeight  decimal.Decimal
	Density      decimal.Decimal
}

// Measure derives volume, weight and density. Dimensions are centimeters,
// volumes cubic meters, density kg/m³. Divisions keep precision decimal places.
func Measure(in model.ShipmentInput, precision int32) (Volumetrics, error) {
	var v Volumetrics
	qty := decimal.NewFromInt(int64(in.Quantity))

	switch in.WeightMode {
	case model.WeightModePerBox:
		v.VolumePerBox = in.Length.Shift(-2).Mul(in.Width.Shift(-2)).Mul(in.Height.Shift(-2))
		v.TotalVolume = v.VolumePerBox.Mul(qty)
		v.TotalWeight = in.WeightPerBox.Mul(qty)
	case model.WeightModeTotals:
		v.TotalVolume = in.TotalVolume
		v.TotalWeight = in.TotalWeight
	default:
		return v, invalid("weight_mode", "must be per_box or totals")
	}

	if v.TotalVolume.IsZero() {
		return v, &DivisionByZeroError{Quantity: "total_volume"}
	}
	v.Density = v.TotalWeight.DivRound(v.TotalVolume, precision)
	return v, nil
}
