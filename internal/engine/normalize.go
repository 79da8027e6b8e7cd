package engine

import (
	"strings"
	"unicode"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/shopspring/decimal"
)

// DefaultSourceCurrency is assumed when a request names no currency.
const DefaultSourceCurrency = "CNY"

// RawShipment is an unvalidated shipment request as received from a form,
// a query string or a chat message. Numbers may use a comma as the decimal
// separator.
type RawShipment struct {
	Category      string
	WeightMode    string
	Quantity      string
	Weight        string
	Length        string
	Width         string
	Height        string
	TotalWeight   string
	TotalVolume   string
	DeclaredValue string
	Currency      string
}

// Normalize validates raw and converts it into a ShipmentInput.
// Every failure is a *ValidationError naming the offending field.
func Normalize(raw RawShipment) (model.ShipmentInput, error) {
	var in model.ShipmentInput

	in.Category = strings.TrimSpace(raw.Category)
	if in.Category == "" {
		return in, invalid("category", "is required")
	}

	mode, err := resolveWeightMode(raw)
	if err != nil {
		return in, err
	}
	in.WeightMode = mode

	qty, err := parsePositiveInt("quantity", raw.Quantity)
	if err != nil {
		return in, err
	}
	in.Quantity = qty

	switch mode {
	case model.WeightModePerBox:
		fields := []struct {
			name string
			raw  string
			dst  *decimal.Decimal
		}{
			{"weight", raw.Weight, &in.WeightPerBox},
			{"length", raw.Length, &in.Length},
			{"width", raw.Width, &in.Width},
			{"height", raw.Height, &in.Height},
		}
		for _, f := range fields {
			if *f.dst, err = parsePositive(f.name, f.raw); err != nil {
				return in, err
			}
		}
	case model.WeightModeTotals:
		if in.TotalWeight, err = parsePositive("total_weight", raw.TotalWeight); err != nil {
			return in, err
		}
		if in.TotalVolume, err = parsePositive("total_volume", raw.TotalVolume); err != nil {
			return in, err
		}
	}

	if in.DeclaredValue, err = parsePositive("declared_value", raw.DeclaredValue); err != nil {
		return in, err
	}

	currency := strings.ToUpper(strings.TrimSpace(raw.Currency))
	if currency == "" {
		currency = DefaultSourceCurrency
	}
	if !isCurrencyCode(currency) {
		return in, invalid("currency", "must be a three-letter currency code")
	}
	in.SourceCurrency = currency

	return in, nil
}

// resolveWeightMode picks the weight mode, inferring it from the populated
// fields when the request does not name one.
func resolveWeightMode(raw RawShipment) (model.WeightMode, error) {
	hasPerBox := anySet(raw.Weight, raw.Length, raw.Width, raw.Height)
	hasTotals := anySet(raw.TotalWeight, raw.TotalVolume)

	mode := model.WeightMode(strings.ToLower(strings.TrimSpace(raw.WeightMode)))
	if mode == "" {
		if hasTotals && !hasPerBox {
			mode = model.WeightModeTotals
		} else {
			mode = model.WeightModePerBox
		}
	}
	if !mode.Valid() {
		return "", invalid("weight_mode", "must be per_box or totals")
	}

	if mode == model.WeightModePerBox && hasTotals {
		return "", invalid("total_weight", "must not be set together with per-box dimensions")
	}
	if mode == model.WeightModeTotals && hasPerBox {
		return "", invalid("weight", "must not be set together with total weight and volume")
	}
	return mode, nil
}

func anySet(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// ParseNumber parses a locale-formatted decimal number. A comma and a dot are
// both accepted as the decimal separator, but only one may appear. Spaces,
// including non-breaking ones, are only accepted between groups of three
// integer digits, as in "1 234,5".
func ParseNumber(s string) (decimal.Decimal, bool) {
	groups := strings.FieldsFunc(s, unicode.IsSpace)
	if len(groups) == 0 || !validGrouping(groups) {
		return decimal.Zero, false
	}

	var b strings.Builder
	separators := 0
	digits := 0
	for i, r := range strings.Join(groups, "") {
		switch {
		case r >= '0' && r <= '9':
			digits++
			b.WriteRune(r)
		case r == ',' || r == '.':
			separators++
			b.WriteByte('.')
		case r == '-' && i == 0:
			b.WriteRune(r)
		default:
			return decimal.Zero, false
		}
	}
	if digits == 0 || separators > 1 {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// validGrouping checks the space-separated parts of a number: a leading
// integer part, then groups that each start with exactly three digits. Only
// the last group may carry the fraction.
func validGrouping(groups []string) bool {
	if len(groups) == 1 {
		return true
	}
	if strings.Trim(strings.TrimPrefix(groups[0], "-"), "0123456789") != "" || strings.TrimPrefix(groups[0], "-") == "" {
		return false
	}
	for i, g := range groups[1:] {
		last := i == len(groups)-2
		intPart := g
		if last {
			if cut := strings.IndexAny(g, ",."); cut >= 0 {
				intPart = g[:cut]
			}
		}
		if len(intPart) != 3 || strings.Trim(intPart, "0123456789") != "" {
			return false
		}
	}
	return true
}

func parsePositive(field, s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, invalid(field, "is required")
	}
	d, ok := ParseNumber(s)
	if !ok {
		return decimal.Zero, invalid(field, "must be a number")
	}
	if !d.IsPositive() {
		return decimal.Zero, invalid(field, "must be greater than zero")
	}
	return d, nil
}

func parsePositiveInt(field, s string) (int, error) {
	d, err := parsePositive(field, s)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, invalid(field, "must be a whole number")
	}
	if d.GreaterThan(decimal.NewFromInt(maxQuantity)) {
		return 0, invalid(field, "is too large")
	}
	return int(d.IntPart()), nil
}

const maxQuantity = 1_000_000

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// validate checks the invariants of an input that did not come through
// Normalize. A zero total volume is left for Measure to report.
func validate(in model.ShipmentInput) error {
	if strings.TrimSpace(in.Category) == "" {
		return invalid("category", "is required")
	}
	if in.Quantity <= 0 {
		return invalid("quantity", "must be greater than zero")
	}
	if !in.DeclaredValue.IsPositive() {
		return invalid("declared_value", "must be greater than zero")
	}
	switch in.WeightMode {
	case model.WeightModePerBox:
		dims := []struct {
			name  string
			value decimal.Decimal
		}{
			{"weight", in.WeightPerBox}, {"length", in.Length}, {"width", in.Width}, {"height", in.Height},
		}
		for _, d := range dims {
			if !d.value.IsPositive() {
				return invalid(d.name, "must be greater than zero")
			}
		}
		if !in.TotalWeight.IsZero() || !in.TotalVolume.IsZero() {
			return invalid("total_weight", "must not be set together with per-box dimensions")
		}
	case model.WeightModeTotals:
		if !in.WeightPerBox.IsZero() || !in.Length.IsZero() || !in.Width.IsZero() || !in.Height.IsZero() {
			return invalid("weight", "must not be set together with total weight and volume")
		}
		if !in.TotalWeight.IsPositive() {
			return invalid("total_weight", "must be greater than zero")
		}
		if in.TotalVolume.IsNegative() {
			return invalid("total_volume", "must not be negative")
		}
	default:
		return invalid("weight_mode", "must be per_box or totals")
	}
	return nil
}
