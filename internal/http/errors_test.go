package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/guttosm/cargo-quote/internal/circuitbreaker"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/engine"
	"github.com/guttosm/cargo-quote/internal/i18n"
	"github.com/guttosm/cargo-quote/internal/repository"
	"github.com/guttosm/cargo-quote/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		key    string
	}{
		{"validation", &engine.ValidationError{Field: "weight", Reason: "is not a number"}, http.StatusBadRequest, i18n.ErrKeyInvalidShipment},
		{"request validation", &dto.ValidationError{Field: "rate", Message: "must be positive"}, http.StatusBadRequest, i18n.ErrKeyInvalidRequest},
		{"division by zero", &engine.DivisionByZeroError{Quantity: "total_volume"}, http.StatusBadRequest, i18n.ErrKeyDivisionByZero},
		{"table error", &engine.TableError{Table: engine.RangeDensity, Row: 2, Reason: "gap"}, http.StatusBadRequest, i18n.ErrKeyInvalidTariffTable},
		{"invalid rate", service.ErrInvalidRate, http.StatusBadRequest, i18n.ErrKeyInvalidRate},
		{"weight out of range", &engine.RangeNotFoundError{Kind: engine.RangeWeight, Value: decimal.NewFromInt(900)}, http.StatusUnprocessableEntity, i18n.ErrKeyOutOfRange},
		{"wrapped range error", fmt.Errorf("quote: %w", &engine.RangeNotFoundError{Kind: engine.RangeDensity, Category: "Мебель"}), http.StatusUnprocessableEntity, i18n.ErrKeyOutOfRange},
		{"no exchange rate", &engine.NoExchangeRateError{Pair: "CNY/USD"}, http.StatusServiceUnavailable, i18n.ErrKeyNoExchangeRate},
		{"tariffs not loaded", service.ErrTariffsNotLoaded, http.StatusServiceUnavailable, i18n.ErrKeyTariffsNotLoaded},
		{"gateway unavailable", fmt.Errorf("%w: tariffs", repository.ErrGatewayUnavailable), http.StatusServiceUnavailable, i18n.ErrKeyGatewayUnavailable},
		{"circuit open", circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable, i18n.ErrKeyGatewayUnavailable},
		{"read only", repository.ErrReadOnly, http.StatusConflict, i18n.ErrKeyReadOnly},
		{"no repository", service.ErrRepositoryNotConfigured, http.StatusServiceUnavailable, i18n.ErrKeyGatewayUnavailable},
		{"deadline", fmt.Errorf("tariffs: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, i18n.ErrKeyTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, i18n.ErrKeyInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mapError(tt.err)
			assert.Equal(t, tt.status, m.status)
			assert.Equal(t, tt.key, m.key)
		})
	}
}
