package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError reports a malformed, missing or non-positive input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// DivisionByZeroError reports a shipment whose total volume is zero, making
// density undefined.
type DivisionByZeroError struct {
	Quantity string
}

func (e *DivisionByZeroError) Error() string {
	return "division by zero: " + e.Quantity + " is zero"
}

// RangeKind names the tariff table a lookup failed in.
type RangeKind string

const (
	// RangeWeight is the weight tier table.
	RangeWeight RangeKind = "weight"
	// RangeDensity is the density tier table.
	RangeDensity RangeKind = "density"
)

// RangeNotFoundError reports a value outside every configured tier.
type RangeNotFoundError struct {
	Kind     RangeKind
	Value    decimal.Decimal
	Category string
}

func (e *RangeNotFoundError) Error() string {
	if e.Kind == RangeDensity {
		return fmt.Sprintf("no density tier for category %q and density %s kg/m3", e.Category, e.Value.StringFixed(2))
	}
	return fmt.Sprintf("no weight tier for total weight %s kg", e.Value.StringFixed(2))
}

// NoExchangeRateError reports a missing exchange rate for a currency pair.
type NoExchangeRateError struct {
	Pair string
}

func (e *NoExchangeRateError) Error() string {
	return "no exchange rate available for " + e.Pair
}
