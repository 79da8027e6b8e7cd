package engine

import (
	"fmt"
	"sort"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/shopspring/decimal"
)

// FindWeightRow returns the tier with MinWeight <= weight < MaxWeight.
func FindWeightRow(rows []model.WeightTariffRow, weight decimal.Decimal) (model.WeightTariffRow, error) {
	for _, row := range rows {
		if row.Contains(weight) {
			return row, nil
		}
	}
	return model.WeightTariffRow{}, &RangeNotFoundError{Kind: RangeWeight, Value: weight}
}

// FindDensityRow returns the tier of category with MinDensity <= density < MaxDensity.
// An unknown category is reported the same way as an out-of-range density.
func FindDensityRow(rows []model.DensityTariffRow, category string, density decimal.Decimal) (model.DensityTariffRow, error) {
	for _, row := range rows {
		if row.Contains(category, density) {
			return row, nil
		}
	}
	return model.DensityTariffRow{}, &RangeNotFoundError{Kind: RangeDensity, Value: density, Category: category}
}

// TableError describes a data-quality problem in an imported tariff table.
type TableError struct {
	Table  RangeKind
	Row    int
	Reason string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("%s table row %d: %s", e.Table, e.Row, e.Reason)
}

type interval struct {
	index    int
	min, max decimal.Decimal
}

// checkIntervals verifies that intervals are well formed, start at zero or
// above, and tile the covered domain without overlaps or gaps.
func checkIntervals(table RangeKind, intervals []interval) error {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].min.LessThan(intervals[j].min)
	})
	for i, iv := range intervals {
		if iv.min.IsNegative() {
			return &TableError{Table: table, Row: iv.index, Reason: "lower bound is negative"}
		}
		if !iv.min.LessThan(iv.max) {
			return &TableError{Table: table, Row: iv.index, Reason: "lower bound must be below upper bound"}
		}
		if i == 0 {
			continue
		}
		prev := intervals[i-1]
		switch {
		case iv.min.LessThan(prev.max):
			return &TableError{Table: table, Row: iv.index, Reason: fmt.Sprintf("overlaps row %d", prev.index)}
		case iv.min.GreaterThan(prev.max):
			return &TableError{Table: table, Row: iv.index, Reason: fmt.Sprintf("leaves a gap after row %d", prev.index)}
		}
	}
	return nil
}

// ValidateWeightTable rejects weight tables with malformed, overlapping or
// non-contiguous tiers, or with negative charges.
func ValidateWeightTable(rows []model.WeightTariffRow) error {
	if len(rows) == 0 {
		return &TableError{Table: RangeWeight, Row: -1, Reason: "table is empty"}
	}
	intervals := make([]interval, len(rows))
	for i, row := range rows {
		for _, m := range model.PackagingMethods {
			p, _ := row.Packaging(m)
			if p.AdditionalWeight.IsNegative() || p.PackagingCost.IsNegative() || p.UnloadingCost.IsNegative() {
				return &TableError{Table: RangeWeight, Row: i, Reason: fmt.Sprintf("%s charges must not be negative", m)}
			}
		}
		intervals[i] = interval{index: i, min: row.MinWeight, max: row.MaxWeight}
	}
	return checkIntervals(RangeWeight, intervals)
}

// ValidateDensityTable applies the same checks per category.
func ValidateDensityTable(rows []model.DensityTariffRow) error {
	if len(rows) == 0 {
		return &TableError{Table: RangeDensity, Row: -1, Reason: "table is empty"}
	}
	byCategory := make(map[string][]interval)
	categories := make([]string, 0)
	for i, row := range rows {
		if row.Category == "" {
			return &TableError{Table: RangeDensity, Row: i, Reason: "category is empty"}
		}
		if row.FastDeliveryCostPerKg.IsNegative() || row.RegularDeliveryCostPerKg.IsNegative() {
			return &TableError{Table: RangeDensity, Row: i, Reason: "delivery rates must not be negative"}
		}
		if _, ok := byCategory[row.Category]; !ok {
			categories = append(categories, row.Category)
		}
		byCategory[row.Category] = append(byCategory[row.Category], interval{index: i, min: row.MinDensity, max: row.MaxDensity})
	}
	for _, c := range categories {
		if err := checkIntervals(RangeDensity, byCategory[c]); err != nil {
			return err
		}
	}
	return nil
}
