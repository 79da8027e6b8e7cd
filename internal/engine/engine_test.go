package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "precision below six", mutate: func(c *Config) { c.DivisionPrecision = 4 }, wantErr: true},
		{name: "negative output places", mutate: func(c *Config) { c.OutputPlaces = -1 }, wantErr: true},
		{name: "empty insurance policy", mutate: func(c *Config) { c.InsurancePolicy = InsurancePolicy{} }, wantErr: true},
		{name: "unknown packaging basis", mutate: func(c *Config) { c.PackagingBasis = "per_pallet" }, wantErr: true},
		{name: "bad pricing currency", mutate: func(c *Config) { c.PricingCurrency = "usd" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			e, err := New(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, cfg, e.Config())
		})
	}
}

func TestEngine_Compute_WorkedExample(t *testing.T) {
	e := newTestEngine(t)

	result, err := e.Compute(sampleInput(), sampleWeights(), sampleDensities(), sampleRate())
	require.NoError(t, err)

	g := result.General
	assert.Equal(t, generalGoods, g.Category)
	assert.Equal(t, 5, g.BoxCount)
	assertDecimal(t, "50", g.TotalWeight)
	assertDecimal(t, "0.18", g.TotalVolume)
	assertDecimal(t, "277.78", g.Density)
	assertDecimal(t, "500", g.DeclaredValue)
	assertDecimal(t, "69.44", g.DeclaredValuePricing)
	assertDecimal(t, "7.2", g.ExchangeRate)
	assert.Equal(t, "manual", g.ExchangeRateSource)
	assertDecimal(t, "0.01", g.InsuranceRate)
	assert.Equal(t, "1%", g.InsuranceRateLabel)
	assertDecimal(t, "0.69", g.InsuranceAmount)
	assert.Equal(t, "CNY", g.SourceCurrency)
	assert.Equal(t, "USD", g.PricingCurrency)

	bag := result.Bag
	assert.Equal(t, model.PackagingBag, bag.Method)
	assertDecimal(t, "52", bag.PackedWeight)
	assertDecimal(t, "6", bag.PackagingCost)
	assertDecimal(t, "4", bag.UnloadingCost)
	assertDecimal(t, "0.69", bag.Insurance)
	assertDecimal(t, "156.00", bag.DeliveryCostFast)
	assertDecimal(t, "114.40", bag.DeliveryCostRegular)
	assertDecimal(t, "166.69", bag.TotalFast)
	assertDecimal(t, "125.09", bag.TotalRegular)

	assertDecimal(t, "53", result.Corners.PackedWeight)
	assertDecimal(t, "159.00", result.Corners.DeliveryCostFast)
	assertDecimal(t, "171.69", result.Corners.TotalFast)
	assertDecimal(t, "129.29", result.Corners.TotalRegular)

	assertDecimal(t, "60", result.Frame.PackedWeight)
	assertDecimal(t, "201.69", result.Frame.TotalFast)
	assertDecimal(t, "153.69", result.Frame.TotalRegular)
}

func TestEngine_Compute_PerBoxPackagingBasis(t *testing.T) {
	e := newTestEngine(t, func(c *Config) { c.PackagingBasis = PerBox })

	result, err := e.Compute(sampleInput(), sampleWeights(), sampleDensities(), sampleRate())
	require.NoError(t, err)

	assertDecimal(t, "30", result.Bag.PackagingCost)
	assertDecimal(t, "20", result.Bag.UnloadingCost)
	// 30 + 20 + 0.694444 + 156
	assertDecimal(t, "206.69", result.Bag.TotalFast)
}

func TestEngine_Compute_DirectTotals(t *testing.T) {
	e := newTestEngine(t)
	input := model.ShipmentInput{
		Category:       generalGoods,
		WeightMode:     model.WeightModeTotals,
		Quantity:       3,
		TotalWeight:    dec("60"),
		TotalVolume:    dec("0.2"),
		DeclaredValue:  dec("720"),
		SourceCurrency: "CNY",
	}

	result, err := e.Compute(input, sampleWeights(), sampleDensities(), sampleRate())
	require.NoError(t, err)

	assertDecimal(t, "300", result.General.Density)
	assertDecimal(t, "0.2", result.General.TotalVolume)
	assertDecimal(t, "100", result.General.DeclaredValuePricing)
	// density 300 falls in [300,1000): fast 2.5 * 62
	assertDecimal(t, "155", result.Bag.DeliveryCostFast)
	assert.Equal(t, 3, result.General.BoxCount)
}

func TestEngine_Compute_InsuranceUsesPackedWeight(t *testing.T) {
	e := newTestEngine(t)
	// 1440 CNY / 7.2 = 200 USD over 10 kg: exactly 20 USD/kg unpacked.
	input := model.ShipmentInput{
		Category:       "Электроника",
		WeightMode:     model.WeightModeTotals,
		Quantity:       1,
		TotalWeight:    dec("10"),
		TotalVolume:    dec("0.05"),
		DeclaredValue:  dec("1440"),
		SourceCurrency: "CNY",
	}

	result, err := e.Compute(input, sampleWeights(), sampleDensities(), sampleRate())
	require.NoError(t, err)

	assertDecimal(t, "0.02", result.General.InsuranceRate)
	assert.Equal(t, "2%", result.General.InsuranceRateLabel)
	assertDecimal(t, "4", result.General.InsuranceAmount)

	// bag adds 1 kg: 200/11 < 20
	assertDecimal(t, "0.01", result.Bag.InsuranceRate)
	assertDecimal(t, "2", result.Bag.Insurance)
	assertDecimal(t, "0.01", result.Frame.InsuranceRate)
}

func TestEngine_Compute_SameCurrencyNeedsNoRate(t *testing.T) {
	e := newTestEngine(t)
	input := sampleInput()
	input.SourceCurrency = "USD"
	input.DeclaredValue = dec("69.44")

	result, err := e.Compute(input, sampleWeights(), sampleDensities(), nil)
	require.NoError(t, err)

	assertDecimal(t, "1", result.General.ExchangeRate)
	assert.Empty(t, result.General.ExchangeRateSource)
	assertDecimal(t, "69.44", result.General.DeclaredValuePricing)
}

func TestEngine_Compute_Errors(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name      string
		input     func() model.ShipmentInput
		noWeights bool
		noRate    bool
		check     func(*testing.T, error)
	}{
		{
			name:  "missing category",
			input: func() model.ShipmentInput { in := sampleInput(); in.Category = " "; return in },
			check: func(t *testing.T, err error) {
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, "category", ve.Field)
			},
		},
		{
			name: "zero total volume",
			input: func() model.ShipmentInput {
				in := sampleInput()
				in.WeightMode = model.WeightModeTotals
				in.WeightPerBox, in.Length, in.Width, in.Height = decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
				in.TotalWeight = dec("50")
				in.TotalVolume = dec("0")
				return in
			},
			check: func(t *testing.T, err error) {
				var de *DivisionByZeroError
				require.True(t, errors.As(err, &de))
				assert.Equal(t, "total_volume", de.Quantity)
			},
		},
		{
			name: "per-box input carrying totals",
			input: func() model.ShipmentInput {
				in := sampleInput()
				in.TotalWeight = dec("9999")
				in.TotalVolume = dec("1")
				return in
			},
			check: func(t *testing.T, err error) {
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, "total_weight", ve.Field)
			},
		},
		{
			name: "totals input carrying per-box dimensions",
			input: func() model.ShipmentInput {
				in := sampleInput()
				in.WeightMode = model.WeightModeTotals
				in.TotalWeight = dec("50")
				in.TotalVolume = dec("0.2")
				return in
			},
			check: func(t *testing.T, err error) {
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, "weight", ve.Field)
			},
		},
		{
			name:  "weight above every tier",
			input: func() model.ShipmentInput { in := sampleInput(); in.WeightPerBox = dec("20"); return in },
			check: func(t *testing.T, err error) {
				var re *RangeNotFoundError
				require.True(t, errors.As(err, &re))
				assert.Equal(t, RangeWeight, re.Kind)
				assertDecimal(t, "100", re.Value)
				assert.Contains(t, re.Error(), "100.00")
			},
		},
		{
			name:  "unknown category",
			input: func() model.ShipmentInput { in := sampleInput(); in.Category = "Мебель"; return in },
			check: func(t *testing.T, err error) {
				var re *RangeNotFoundError
				require.True(t, errors.As(err, &re))
				assert.Equal(t, RangeDensity, re.Kind)
				assert.Equal(t, "Мебель", re.Category)
			},
		},
		{
			name:   "missing exchange rate",
			input:  sampleInput,
			noRate: true,
			check: func(t *testing.T, err error) {
				var ne *NoExchangeRateError
				require.True(t, errors.As(err, &ne))
				assert.Equal(t, "CNY/USD", ne.Pair)
			},
		},
		{
			name:      "empty weight table",
			input:     sampleInput,
			noWeights: true,
			check: func(t *testing.T, err error) {
				var re *RangeNotFoundError
				require.True(t, errors.As(err, &re))
				assert.Equal(t, RangeWeight, re.Kind)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, weights := sampleRate(), sampleWeights()
			if tt.noRate {
				rate = nil
			}
			if tt.noWeights {
				weights = nil
			}
			result, err := e.Compute(tt.input(), weights, sampleDensities(), rate)
			require.Error(t, err)
			assert.Nil(t, result)
			tt.check(t, err)
		})
	}
}

func TestEngine_Compute_IsIdempotentAndConcurrent(t *testing.T) {
	e := newTestEngine(t)
	weights, densities := sampleWeights(), sampleDensities()

	first, err := e.Compute(sampleInput(), weights, densities, sampleRate())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*model.QuoteResult, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := e.Compute(sampleInput(), weights, densities, sampleRate())
			if err == nil {
				results[i] = r
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assert.True(t, first.Bag.TotalFast.Equal(r.Bag.TotalFast))
		assert.True(t, first.Frame.TotalRegular.Equal(r.Frame.TotalRegular))
	}
	assertDecimal(t, "50", weights[1].MinWeight)
}

func TestEngine_ComputeSnapshot(t *testing.T) {
	e := newTestEngine(t)

	snapshot := &model.TariffSnapshot{WeightRows: sampleWeights(), DensityRows: sampleDensities()}
	result, err := e.ComputeSnapshot(sampleInput(), snapshot, sampleRate())
	require.NoError(t, err)
	assertDecimal(t, "166.69", result.Bag.TotalFast)

	_, err = e.ComputeSnapshot(sampleInput(), nil, sampleRate())
	var re *RangeNotFoundError
	assert.True(t, errors.As(err, &re))
}

func TestRound_IsIdempotent(t *testing.T) {
	values := []string{"277.777777", "0.185", "166.694444", "0.005", "12"}
	for _, v := range values {
		once := Round(dec(v), 2)
		assert.True(t, once.Equal(Round(once, 2)), v)
	}
	assertDecimal(t, "0.19", Round(dec("0.185"), 2))
	assertDecimal(t, "0.01", Round(dec("0.005"), 2))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "1%", FormatRate(dec("0.01")))
	assert.Equal(t, "1.5%", FormatRate(dec("0.015")))
	assert.Equal(t, "0%", FormatRate(dec("0")))
}
