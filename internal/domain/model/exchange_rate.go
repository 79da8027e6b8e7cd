package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyPair names a conversion from a source currency into a pricing currency.
type CurrencyPair struct {
	Source  string `json:"source"`
	Pricing string `json:"pricing"`
}

// String renders the pair as "CNY/USD".
func (p CurrencyPair) String() string {
	return p.Source + "/" + p.Pricing
}

// ParseCurrencyPair parses "CNY/USD" into a CurrencyPair.
func ParseCurrencyPair(s string) (CurrencyPair, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return CurrencyPair{}, fmt.Errorf("invalid currency pair %q", s)
	}
	return CurrencyPair{
		Source:  strings.ToUpper(strings.TrimSpace(parts[0])),
		Pricing: strings.ToUpper(strings.TrimSpace(parts[1])),
	}, nil
}

// ExchangeRate is a recorded observation of how many units of the source
// currency buy one unit of the pricing currency.
type ExchangeRate struct {
	Pair       CurrencyPair    `json:"pair"`
	Rate       decimal.Decimal `json:"rate"`
	RecordedAt time.Time       `json:"recorded_at"`
	Source     string          `json:"source"`
	Notes      string          `json:"notes,omitempty"`
}
