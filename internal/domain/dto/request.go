// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/engine"
)

// Number is a request field that accepts a JSON string or a JSON number.
// The raw text is kept so that "12,5" reaches the normalizer unchanged.
type Number string

// UnmarshalJSON accepts "12.5", "12,5", 12.5 and null.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected a number or a string, got %s", string(b))
	}
	*n = Number(num.String())
	return nil
}

// QuoteRequest represents a shipment to be priced, as JSON body or query string.
//
// Either weight, length, width and height (one box, centimeters) or
// total_weight and total_volume (kg, m³) must be given. Numbers may be sent
// as strings and may use a comma as the decimal separator.
//
// @Description Shipment to price
// @Example {"category": "Обычные товары", "quantity": 5, "weight": 10, "length": 40, "width": 30, "height": 30, "declared_value": 500}
type QuoteRequest struct {
	// Category is a product category of the density table.
	Category string `json:"category" form:"category" example:"Обычные товары"`
	// WeightMode is "per_box" or "totals"; inferred from the fields when empty.
	WeightMode string `json:"weight_mode,omitempty" form:"weight_mode" example:"per_box"`
	// Quantity is the number of boxes.
	Quantity Number `json:"quantity" form:"quantity" swaggertype:"string" example:"5"`
	// Weight is the weight of one box in kg.
	Weight Number `json:"weight,omitempty" form:"weight" swaggertype:"string" example:"10"`
	// Length, Width and Height are box dimensions in centimeters.
	Length Number `json:"length,omitempty" form:"length" swaggertype:"string" example:"40"`
	Width  Number `json:"width,omitempty" form:"width" swaggertype:"string" example:"30"`
	Height Number `json:"height,omitempty" form:"height" swaggertype:"string" example:"30"`
	// TotalWeight in kg and TotalVolume in m³ describe the whole shipment.
	TotalWeight Number `json:"total_weight,omitempty" form:"total_weight" swaggertype:"string"`
	TotalVolume Number `json:"total_volume,omitempty" form:"total_volume" swaggertype:"string"`
	// DeclaredValue is the goods value in Currency.
	DeclaredValue Number `json:"declared_value" form:"declared_value" swaggertype:"string" example:"500"`
	// Currency is the currency of DeclaredValue, CNY when empty.
	Currency string `json:"currency,omitempty" form:"currency" example:"CNY"`
} // @name QuoteRequest

// ToRawShipment converts the request for the normalizer.
func (r *QuoteRequest) ToRawShipment() engine.RawShipment {
	return engine.RawShipment{
		Category:      r.Category,
		WeightMode:    r.WeightMode,
		Quantity:      string(r.Quantity),
		Weight:        string(r.Weight),
		Length:        string(r.Length),
		Width:         string(r.Width),
		Height:        string(r.Height),
		TotalWeight:   string(r.TotalWeight),
		TotalVolume:   string(r.TotalVolume),
		DeclaredValue: string(r.DeclaredValue),
		Currency:      r.Currency,
	}
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// PackagingTariffInput is one packaging method of a weight tier.
type PackagingTariffInput struct {
	AdditionalWeight Number `json:"additional_weight" swaggertype:"string" example:"0,5"`
	PackagingCost    Number `json:"packaging_cost" swaggertype:"string" example:"10"`
	UnloadingCost    Number `json:"unloading_cost" swaggertype:"string" example:"5"`
} // @name PackagingTariffInput

// WeightTariffRowInput is a weight tier as sent by the client.
type WeightTariffRowInput struct {
	MinWeight Number               `json:"min_weight" swaggertype:"string" example:"0"`
	MaxWeight Number               `json:"max_weight" swaggertype:"string" example:"100"`
	Bag       PackagingTariffInput `json:"bag"`
	Corners   PackagingTariffInput `json:"corners"`
	Frame     PackagingTariffInput `json:"frame"`
} // @name WeightTariffRowInput

// DensityTariffRowInput is a density tier as sent by the client.
type DensityTariffRowInput struct {
	Category                 string `json:"category" example:"Обычные товары"`
	MinDensity               Number `json:"min_density" swaggertype:"string" example:"100"`
	MaxDensity               Number `json:"max_density" swaggertype:"string" example:"200"`
	FastDeliveryCostPerKg    Number `json:"fast_delivery_cost_per_kg" swaggertype:"string" example:"3,5"`
	RegularDeliveryCostPerKg Number `json:"regular_delivery_cost_per_kg" swaggertype:"string" example:"2,1"`
} // @name DensityTariffRowInput

// ImportTariffsRequest replaces both tariff tables with a new version.
// Decimal values may be JSON numbers or strings and may use a decimal
// comma. Omitted values are zero; tier consistency is checked on import.
//
// @Description New weight and density tariff tables
type ImportTariffsRequest struct {
	WeightRows  []WeightTariffRowInput  `json:"weight_rows" binding:"required,min=1"`
	DensityRows []DensityTariffRowInput `json:"density_rows" binding:"required,min=1"`

	weights   []model.WeightTariffRow
	densities []model.DensityTariffRow
} // @name ImportTariffsRequest

// Validate checks the tables and parses every value.
func (r *ImportTariffsRequest) Validate() error {
	if len(r.WeightRows) == 0 {
		return &ValidationError{Field: "weight_rows", Message: "must not be empty"}
	}
	if len(r.DensityRows) == 0 {
		return &ValidationError{Field: "density_rows", Message: "must not be empty"}
	}

	weights := make([]model.WeightTariffRow, 0, len(r.WeightRows))
	for i, in := range r.WeightRows {
		p := tariffParser{prefix: fmt.Sprintf("weight_rows[%d].", i)}
		row := model.WeightTariffRow{
			MinWeight: p.value("min_weight", in.MinWeight),
			MaxWeight: p.value("max_weight", in.MaxWeight),
			Bag:       p.packaging("bag", in.Bag),
			Corners:   p.packaging("corners", in.Corners),
			Frame:     p.packaging("frame", in.Frame),
		}
		if p.err != nil {
			return p.err
		}
		weights = append(weights, row)
	}

	densities := make([]model.DensityTariffRow, 0, len(r.DensityRows))
	for i, in := range r.DensityRows {
		prefix := fmt.Sprintf("density_rows[%d].", i)
		if strings.TrimSpace(in.Category) == "" {
			return &ValidationError{Field: prefix + "category", Message: "is required"}
		}
		p := tariffParser{prefix: prefix}
		row := model.DensityTariffRow{
			Category:                 strings.TrimSpace(in.Category),
			MinDensity:               p.value("min_density", in.MinDensity),
			MaxDensity:               p.value("max_density", in.MaxDensity),
			FastDeliveryCostPerKg:    p.value("fast_delivery_cost_per_kg", in.FastDeliveryCostPerKg),
			RegularDeliveryCostPerKg: p.value("regular_delivery_cost_per_kg", in.RegularDeliveryCostPerKg),
		}
		if p.err != nil {
			return p.err
		}
		densities = append(densities, row)
	}

	r.weights, r.densities = weights, densities
	return nil
}

// Tables returns the rows parsed by Validate.
func (r *ImportTariffsRequest) Tables() ([]model.WeightTariffRow, []model.DensityTariffRow) {
	return r.weights, r.densities
}

// tariffParser keeps the first parse error of a row.
type tariffParser struct {
	prefix string
	err    error
}

func (p *tariffParser) value(field string, n Number) decimal.Decimal {
	if p.err != nil || strings.TrimSpace(string(n)) == "" {
		return decimal.Zero
	}
	d, ok := engine.ParseNumber(string(n))
	if !ok {
		p.err = &ValidationError{Field: p.prefix + field, Message: "must be a number"}
		return decimal.Zero
	}
	return d
}

func (p *tariffParser) packaging(method string, in PackagingTariffInput) model.PackagingTariff {
	return model.PackagingTariff{
		AdditionalWeight: p.value(method+".additional_weight", in.AdditionalWeight),
		PackagingCost:    p.value(method+".packaging_cost", in.PackagingCost),
		UnloadingCost:    p.value(method+".unloading_cost", in.UnloadingCost),
	}
}

// RecordExchangeRateRequest records a new rate observation.
//
// @Description Exchange rate observation: units of source currency per one unit of pricing currency
// @Example {"rate": "7.20", "source": "bank"}
type RecordExchangeRateRequest struct {
	Rate   Number `json:"rate" binding:"required" swaggertype:"string" example:"7.20"`
	Source string `json:"source,omitempty" example:"bank"`
	Notes  string `json:"notes,omitempty"`
} // @name RecordExchangeRateRequest

// ParseRate validates and parses the rate.
func (r *RecordExchangeRateRequest) ParseRate() (decimal.Decimal, error) {
	rate, ok := engine.ParseNumber(string(r.Rate))
	if !ok || !rate.IsPositive() {
		return decimal.Zero, &ValidationError{Field: "rate", Message: "must be a number greater than zero"}
	}
	return rate, nil
}

// Audit log paging bounds.
const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 500
)

// AuditQuery filters the audit and request log. From and To are RFC 3339
// timestamps.
type AuditQuery struct {
	Operator  string `form:"operator" example:"admin"`
	Action    string `form:"action" example:"tariff_import"`
	RequestID string `form:"request_id"`
	Level     string `form:"level" example:"warn"`
	Path      string `form:"path" example:"/api/quote"`
	From      string `form:"from" example:"2026-03-01T00:00:00Z"`
	To        string `form:"to" example:"2026-03-02T00:00:00Z"`
	Limit     int    `form:"limit" example:"50"`
	Offset    int    `form:"offset" example:"0"`

	from, to *time.Time
}

var auditActions = map[model.ActionType]struct{}{
	model.ActionLogin:         {},
	model.ActionLogout:        {},
	model.ActionQuote:         {},
	model.ActionTariffImport:  {},
	model.ActionRateRecorded:  {},
	model.ActionHistoryViewed: {},
}

var auditLevels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}

// Validate checks the filters and parses the time range.
func (q *AuditQuery) Validate() error {
	if q.Action != "" {
		if _, ok := auditActions[model.ActionType(q.Action)]; !ok {
			return &ValidationError{Field: "action", Message: "unknown action"}
		}
	}
	q.Level = strings.ToLower(strings.TrimSpace(q.Level))
	if q.Level != "" {
		if _, ok := auditLevels[q.Level]; !ok {
			return &ValidationError{Field: "level", Message: "must be one of debug, info, warn, error"}
		}
	}
	if q.Offset < 0 {
		return &ValidationError{Field: "offset", Message: "must not be negative"}
	}

	var err error
	if q.from, err = parseAuditTime("from", q.From); err != nil {
		return err
	}
	if q.to, err = parseAuditTime("to", q.To); err != nil {
		return err
	}
	if q.from != nil && q.to != nil && q.to.Before(*q.from) {
		return &ValidationError{Field: "to", Message: "must not be before from"}
	}
	return nil
}

func parseAuditTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, &ValidationError{Field: field, Message: "must be an RFC 3339 timestamp"}
	}
	t = t.UTC()
	return &t, nil
}

// PageLimit returns Limit bounded to [1, MaxAuditLimit], DefaultAuditLimit when unset.
func (q *AuditQuery) PageLimit() int {
	switch {
	case q.Limit <= 0:
		return DefaultAuditLimit
	case q.Limit > MaxAuditLimit:
		return MaxAuditLimit
	default:
		return q.Limit
	}
}

// ToOptions converts a validated query for the logging service.
func (q *AuditQuery) ToOptions() model.LogQueryOptions {
	return model.LogQueryOptions{
		RequestID:  q.RequestID,
		Level:      q.Level,
		Operator:   q.Operator,
		ActionType: model.ActionType(q.Action),
		Path:       q.Path,
		StartTime:  q.from,
		EndTime:    q.to,
		Limit:      q.PageLimit(),
		Skip:       q.Offset,
	}
}
