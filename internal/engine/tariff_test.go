package engine

import (
	"errors"
	"testing"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindWeightRow(t *testing.T) {
	rows := sampleWeights()

	tests := []struct {
		weight  string
		wantMin string
		wantErr bool
	}{
		{weight: "0.01", wantMin: "0"},
		{weight: "49.99", wantMin: "0"},
		{weight: "50", wantMin: "50"},
		{weight: "99.999", wantMin: "50"},
		{weight: "100", wantErr: true},
		{weight: "250", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.weight, func(t *testing.T) {
			row, err := FindWeightRow(rows, dec(tt.weight))
			if tt.wantErr {
				var re *RangeNotFoundError
				require.True(t, errors.As(err, &re))
				assert.Equal(t, RangeWeight, re.Kind)
				return
			}
			require.NoError(t, err)
			assertDecimal(t, tt.wantMin, row.MinWeight)
		})
	}
}

func TestFindDensityRow(t *testing.T) {
	rows := sampleDensities()

	row, err := FindDensityRow(rows, generalGoods, dec("250"))
	require.NoError(t, err)
	assertDecimal(t, "3.0", row.FastDeliveryCostPerKg)

	row, err = FindDensityRow(rows, generalGoods, dec("249.999"))
	require.NoError(t, err)
	assertDecimal(t, "3.5", row.FastDeliveryCostPerKg)

	_, err = FindDensityRow(rows, generalGoods, dec("50"))
	var re *RangeNotFoundError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, generalGoods, re.Category)
	assert.Contains(t, re.Error(), "50.00")

	_, err = FindDensityRow(rows, "Электроника", dec("1000"))
	assert.True(t, errors.As(err, &re))
}

func TestValidateWeightTable(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]model.WeightTariffRow) []model.WeightTariffRow
		wantErr string
	}{
		{name: "sample is valid", mutate: func(r []model.WeightTariffRow) []model.WeightTariffRow { return r }},
		{
			name: "unsorted input is valid",
			mutate: func(r []model.WeightTariffRow) []model.WeightTariffRow {
				return []model.WeightTariffRow{r[1], r[0]}
			},
		},
		{name: "empty", mutate: func([]model.WeightTariffRow) []model.WeightTariffRow { return nil }, wantErr: "empty"},
		{
			name:    "overlap",
			mutate:  func(r []model.WeightTariffRow) []model.WeightTariffRow { r[1].MinWeight = dec("40"); return r },
			wantErr: "overlaps",
		},
		{
			name:    "gap",
			mutate:  func(r []model.WeightTariffRow) []model.WeightTariffRow { r[1].MinWeight = dec("60"); return r },
			wantErr: "gap",
		},
		{
			name:    "inverted bounds",
			mutate:  func(r []model.WeightTariffRow) []model.WeightTariffRow { r[1].MaxWeight = dec("50"); return r },
			wantErr: "below upper bound",
		},
		{
			name: "negative charge",
			mutate: func(r []model.WeightTariffRow) []model.WeightTariffRow {
				r[0].Frame.UnloadingCost = dec("-1")
				return r
			},
			wantErr: "frame charges",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeightTable(tt.mutate(sampleWeights()))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var te *TableError
			require.True(t, errors.As(err, &te))
			assert.Contains(t, te.Error(), tt.wantErr)
		})
	}
}

func TestValidateDensityTable(t *testing.T) {
	assert.NoError(t, ValidateDensityTable(sampleDensities()))

	rows := sampleDensities()
	rows[2].MinDensity = dec("310")
	err := ValidateDensityTable(rows)
	var te *TableError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 2, te.Row)

	rows = sampleDensities()
	rows[3].Category = ""
	assert.Error(t, ValidateDensityTable(rows))

	rows = sampleDensities()
	rows[0].RegularDeliveryCostPerKg = dec("-2")
	assert.Error(t, ValidateDensityTable(rows))

	assert.Error(t, ValidateDensityTable(nil))
}
