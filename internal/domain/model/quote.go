package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeneralInformation summarises the shipment a quote was computed for.
// Monetary and measured values are rounded for output.
type GeneralInformation struct {
	Category             string          `json:"category"`
	TotalWeight          decimal.Decimal `json:"total_weight"`
	Density              decimal.Decimal `json:"density"`
	TotalVolume          decimal.Decimal `json:"total_volume"`
	BoxCount             int             `json:"box_count"`
	SourceCurrency       string          `json:"source_currency"`
	PricingCurrency      string          `json:"pricing_currency"`
	DeclaredValue        decimal.Decimal `json:"declared_value"`
	DeclaredValuePricing decimal.Decimal `json:"declared_value_pricing"`
	ExchangeRate         decimal.Decimal `json:"exchange_rate"`
	ExchangeRateSource   string          `json:"exchange_rate_source,omitempty"`
	InsuranceRate        decimal.Decimal `json:"insurance_rate"`
	InsuranceRateLabel   string          `json:"insurance_rate_label"`
	InsuranceAmount      decimal.Decimal `json:"insurance_amount"`
}

// PackagingQuote is the price breakdown for a single packaging method.
type PackagingQuote struct {
	Method              PackagingMethod `json:"method"`
	PackedWeight        decimal.Decimal `json:"packed_weight"`
	PackagingCost       decimal.Decimal `json:"packaging_cost"`
	UnloadingCost       decimal.Decimal `json:"unloading_cost"`
	InsuranceRate       decimal.Decimal `json:"insurance_rate"`
	InsuranceRateLabel  string          `json:"insurance_rate_label"`
	Insurance           decimal.Decimal `json:"insurance"`
	DeliveryCostFast    decimal.Decimal `json:"delivery_cost_fast"`
	DeliveryCostRegular decimal.Decimal `json:"delivery_cost_regular"`
	TotalFast           decimal.Decimal `json:"total_fast"`
	TotalRegular        decimal.Decimal `json:"total_regular"`
}

// QuoteResult is the full price matrix for one shipment.
type QuoteResult struct {
	General GeneralInformation `json:"general_information"`
	Bag     PackagingQuote     `json:"bag"`
	Corners PackagingQuote     `json:"corners"`
	Frame   PackagingQuote     `json:"frame"`
}

// Packaging returns the quote for the given method.
func (q *QuoteResult) Packaging(m PackagingMethod) (PackagingQuote, bool) {
	switch m {
	case PackagingBag:
		return q.Bag, true
	case PackagingCorners:
		return q.Corners, true
	case PackagingFrame:
		return q.Frame, true
	default:
		return PackagingQuote{}, false
	}
}

// Cheapest returns the packaging quote with the lowest regular-delivery total.
// Ties keep presentation order.
func (q *QuoteResult) Cheapest() PackagingQuote {
	best := q.Bag
	for _, p := range []PackagingQuote{q.Corners, q.Frame} {
		if p.TotalRegular.LessThan(best.TotalRegular) {
			best = p
		}
	}
	return best
}

// QuoteRecord is a computed quote kept in the calculation history.
type QuoteRecord struct {
	ID            string        `json:"id"`
	RequestID     string        `json:"request_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	TariffVersion string        `json:"tariff_version,omitempty"`
	Input         ShipmentInput `json:"input"`
	Result        QuoteResult   `json:"result"`
}
