package engine

import (
	"errors"
	"testing"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "12", want: "12", ok: true},
		{in: "12.5", want: "12.5", ok: true},
		{in: "12,5", want: "12.5", ok: true},
		{in: " 0,036 ", want: "0.036", ok: true},
		{in: "1 200,50", want: "1200.5", ok: true},
		{in: "1\u00a0200", want: "1200", ok: true},
		{in: "1 234,5", want: "1234.5", ok: true},
		{in: "12 345 678.25", want: "12345678.25", ok: true},
		{in: "-1 500", want: "-1500", ok: true},
		{in: "-3", want: "-3", ok: true},
		{in: "", ok: false},
		{in: "abc", ok: false},
		{in: "1,2.3", ok: false},
		{in: "12kg", ok: false},
		{in: ",", ok: false},
		{in: "1-2", ok: false},
		{in: "1 2", ok: false},
		{in: "12 ,5", ok: false},
		{in: "1 2345", ok: false},
		{in: "1,5 000", ok: false},
		{in: "- 100", ok: false},
		{in: "1 200 ,5", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assertDecimal(t, tt.want, got)
			}
		})
	}
}

func perBoxRaw() RawShipment {
	return RawShipment{
		Category:      "  " + generalGoods + " ",
		Quantity:      "5",
		Weight:        "10",
		Length:        "40",
		Width:         "30",
		Height:        "30",
		DeclaredValue: "500",
	}
}

func TestNormalize_PerBox(t *testing.T) {
	in, err := Normalize(perBoxRaw())
	require.NoError(t, err)

	assert.Equal(t, generalGoods, in.Category)
	assert.Equal(t, model.WeightModePerBox, in.WeightMode)
	assert.Equal(t, 5, in.Quantity)
	assertDecimal(t, "10", in.WeightPerBox)
	assertDecimal(t, "40", in.Length)
	assertDecimal(t, "500", in.DeclaredValue)
	assert.Equal(t, DefaultSourceCurrency, in.SourceCurrency)
}

func TestNormalize_TotalsInferred(t *testing.T) {
	raw := RawShipment{
		Category:      generalGoods,
		Quantity:      "3",
		TotalWeight:   "60,5",
		TotalVolume:   "0,2",
		DeclaredValue: "720",
		Currency:      "usd",
	}

	in, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, model.WeightModeTotals, in.WeightMode)
	assertDecimal(t, "60.5", in.TotalWeight)
	assertDecimal(t, "0.2", in.TotalVolume)
	assert.Equal(t, "USD", in.SourceCurrency)
	assert.True(t, in.WeightPerBox.IsZero())
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawShipment)
		field  string
	}{
		{name: "missing category", mutate: func(r *RawShipment) { r.Category = "" }, field: "category"},
		{name: "unknown weight mode", mutate: func(r *RawShipment) { r.WeightMode = "pallets" }, field: "weight_mode"},
		{name: "fractional quantity", mutate: func(r *RawShipment) { r.Quantity = "2,5" }, field: "quantity"},
		{name: "zero quantity", mutate: func(r *RawShipment) { r.Quantity = "0" }, field: "quantity"},
		{name: "huge quantity", mutate: func(r *RawShipment) { r.Quantity = "5000000" }, field: "quantity"},
		{name: "missing weight", mutate: func(r *RawShipment) { r.Weight = "" }, field: "weight"},
		{name: "negative length", mutate: func(r *RawShipment) { r.Length = "-40" }, field: "length"},
		{name: "zero width", mutate: func(r *RawShipment) { r.Width = "0" }, field: "width"},
		{name: "text height", mutate: func(r *RawShipment) { r.Height = "tall" }, field: "height"},
		{name: "zero declared value", mutate: func(r *RawShipment) { r.DeclaredValue = "0,00" }, field: "declared_value"},
		{name: "bad currency", mutate: func(r *RawShipment) { r.Currency = "yuan" }, field: "currency"},
		{name: "totals mixed into per box", mutate: func(r *RawShipment) { r.TotalWeight = "50" }, field: "total_weight"},
		{
			name: "per box mixed into totals",
			mutate: func(r *RawShipment) {
				r.WeightMode = "totals"
				r.TotalWeight = "50"
				r.TotalVolume = "0.2"
			},
			field: "weight",
		},
		{
			name: "zero total volume",
			mutate: func(r *RawShipment) {
				*r = RawShipment{Category: generalGoods, Quantity: "1", TotalWeight: "5", TotalVolume: "0", DeclaredValue: "10"}
			},
			field: "total_volume",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := perBoxRaw()
			tt.mutate(&raw)

			_, err := Normalize(raw)
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %T", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
