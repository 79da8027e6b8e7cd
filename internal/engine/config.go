package engine

import (
	"fmt"
	"strings"
)

// PackagingBasis decides whether packaging and unloading charges apply once
// per shipment or once per box.
type PackagingBasis string

const (
	// PerShipment charges the tier's packaging and unloading cost once.
	PerShipment PackagingBasis = "per_shipment"
	// PerBox multiplies the tier's packaging and unloading cost by the box count.
	PerBox PackagingBasis = "per_box"
)

// ParsePackagingBasis parses a configured packaging basis name.
func ParsePackagingBasis(s string) (PackagingBasis, error) {
	switch PackagingBasis(strings.ToLower(strings.TrimSpace(s))) {
	case PerShipment, "":
		return PerShipment, nil
	case PerBox:
		return PerBox, nil
	default:
		return "", fmt.Errorf("unknown packaging basis %q", s)
	}
}

// Config holds the arithmetic and pricing policy of an Engine.
type Config struct {
	// DivisionPrecision is the number of decimal places kept by every division.
	DivisionPrecision int32
	// OutputPlaces is the number of decimal places of every output value.
	OutputPlaces int32
	// InsurancePolicy maps cost per kilogram to an insurance rate.
	InsurancePolicy InsurancePolicy
	// PackagingBasis selects per-shipment or per-box packaging charges.
	PackagingBasis PackagingBasis
	// PricingCurrency is the currency tariffs are denominated in.
	PricingCurrency string
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		DivisionPrecision: 16,
		OutputPlaces:      2,
		InsurancePolicy:   ThreeTierPolicy(),
		PackagingBasis:    PerShipment,
		PricingCurrency:   "USD",
	}
}
