package engine

import (
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Convert turns amount, stated in source currency, into pricing currency.
// It returns the converted amount and the rate that was applied. No rate is
// needed when both currencies are the same; a rate for a different pair is
// treated as missing.
func Convert(amount decimal.Decimal, rate *model.ExchangeRate, source, pricing string, precision int32) (decimal.Decimal, decimal.Decimal, error) {
	if source == pricing {
		return amount, decimal.NewFromInt(1), nil
	}

	want := model.CurrencyPair{Source: source, Pricing: pricing}
	if rate == nil || (rate.Pair != (model.CurrencyPair{}) && rate.Pair != want) {
		return decimal.Zero, decimal.Zero, &NoExchangeRateError{Pair: want.String()}
	}
	if !rate.Rate.IsPositive() {
		return decimal.Zero, decimal.Zero, invalid("exchange_rate", "must be greater than zero")
	}

	return amount.DivRound(rate.Rate, precision), rate.Rate, nil
}
