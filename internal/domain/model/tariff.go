package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PackagingMethod identifies one of the supported ways a shipment is packed.
type PackagingMethod string

const (
	// PackagingBag is a plain sack.
	PackagingBag PackagingMethod = "bag"
	// PackagingCorners is a bag reinforced with cardboard corners.
	PackagingCorners PackagingMethod = "corners"
	// PackagingFrame is a wooden frame.
	PackagingFrame PackagingMethod = "frame"
)

// PackagingMethods lists every packaging method in presentation order.
var PackagingMethods = []PackagingMethod{PackagingBag, PackagingCorners, PackagingFrame}

// PackagingTariff holds the per-method charges of a weight tier.
type PackagingTariff struct {
	// AdditionalWeight is the weight in kg the packaging adds to the shipment.
	AdditionalWeight decimal.Decimal `json:"additional_weight"`
	PackagingCost    decimal.Decimal `json:"packaging_cost"`
	UnloadingCost    decimal.Decimal `json:"unloading_cost"`
}

// WeightTariffRow is a weight tier covering [MinWeight, MaxWeight) kg.
type WeightTariffRow struct {
	MinWeight decimal.Decimal `json:"min_weight"`
	MaxWeight decimal.Decimal `json:"max_weight"`
	Bag       PackagingTariff `json:"bag"`
	Corners   PackagingTariff `json:"corners"`
	Frame     PackagingTariff `json:"frame"`
}

// Contains reports whether weight falls inside the half-open tier interval.
func (r WeightTariffRow) Contains(weight decimal.Decimal) bool {
	return r.MinWeight.LessThanOrEqual(weight) && weight.LessThan(r.MaxWeight)
}

// Packaging returns the tariff for the given method.
func (r WeightTariffRow) Packaging(m PackagingMethod) (PackagingTariff, bool) {
	switch m {
	case PackagingBag:
		return r.Bag, true
	case PackagingCorners:
		return r.Corners, true
	case PackagingFrame:
		return r.Frame, true
	default:
		return PackagingTariff{}, false
	}
}

// DensityTariffRow is a density tier covering [MinDensity, MaxDensity) kg/m³
// for one product category.
type DensityTariffRow struct {
	Category                 string          `json:"category"`
	MinDensity               decimal.Decimal `json:"min_density"`
	MaxDensity               decimal.Decimal `json:"max_density"`
	FastDeliveryCostPerKg    decimal.Decimal `json:"fast_delivery_cost_per_kg"`
	RegularDeliveryCostPerKg decimal.Decimal `json:"regular_delivery_cost_per_kg"`
}

// Contains reports whether the row matches category and density.
func (r DensityTariffRow) Contains(category string, density decimal.Decimal) bool {
	return r.Category == category &&
		r.MinDensity.LessThanOrEqual(density) && density.LessThan(r.MaxDensity)
}

// TariffSnapshot is an immutable view of both tariff tables taken at one
// point in time. A calculation reads from a single snapshot only.
type TariffSnapshot struct {
	Version     string             `json:"version"`
	LoadedAt    time.Time          `json:"loaded_at"`
	WeightRows  []WeightTariffRow  `json:"weight_rows"`
	DensityRows []DensityTariffRow `json:"density_rows"`
}

// Categories returns the distinct categories of the density table, sorted.
func (s *TariffSnapshot) Categories() []string {
	if s == nil {
		return []string{}
	}
	seen := make(map[string]struct{}, len(s.DensityRows))
	categories := make([]string, 0, len(s.DensityRows))
	for _, row := range s.DensityRows {
		if _, ok := seen[row.Category]; ok {
			continue
		}
		seen[row.Category] = struct{}{}
		categories = append(categories, row.Category)
	}
	sort.Strings(categories)
	return categories
}

// TariffSetSummary describes one imported version of the tariff tables.
type TariffSetSummary struct {
	Version     string    `json:"version"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
	WeightRows  int       `json:"weight_rows"`
	DensityRows int       `json:"density_rows"`
}
