// Package model defines the core domain entities for the cargo quote service.
package model

import "github.com/shopspring/decimal"

// WeightMode selects which group of weight fields a shipment carries.
type WeightMode string

const (
	// WeightModePerBox means weight and dimensions are given for a single box.
	WeightModePerBox WeightMode = "per_box"
	// WeightModeTotals means total weight and total volume are given directly.
	WeightModeTotals WeightMode = "totals"
)

// Valid reports whether m is a known weight mode.
func (m WeightMode) Valid() bool {
	return m == WeightModePerBox || m == WeightModeTotals
}

// ShipmentInput is a validated, canonical shipment request.
//
// Exactly one field group is populated: WeightPerBox/Length/Width/Height
// (centimeters) for WeightModePerBox, or TotalWeight/TotalVolume (kg, m³)
// for WeightModeTotals.
type ShipmentInput struct {
	Category       string          `json:"category"`
	WeightMode     WeightMode      `json:"weight_mode"`
	Quantity       int             `json:"quantity"`
	WeightPerBox   decimal.Decimal `json:"weight_per_box"`
	Length         decimal.Decimal `json:"length"`
	Width          decimal.Decimal `json:"width"`
	Height         decimal.Decimal `json:"height"`
	TotalWeight    decimal.Decimal `json:"total_weight"`
	TotalVolume    decimal.Decimal `json:"total_volume"`
	DeclaredValue  decimal.Decimal `json:"declared_value"`
	SourceCurrency string          `json:"source_currency"`
}
