package dto

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := NewError(ErrCodeOutOfRange, "weight 1200 kg is above every tariff range").
		WithRequestID("req-42")

	assert.Equal(t, ErrCodeOutOfRange, err.Error)
	assert.Equal(t, "weight 1200 kg is above every tariff range", err.Message)
	assert.Equal(t, "req-42", err.RequestID)
	assert.Equal(t, time.UTC, err.Timestamp.Location())
	assert.WithinDuration(t, time.Now(), err.Timestamp, time.Second)
}

func TestErrorResponse_WithDetails(t *testing.T) {
	tests := []struct {
		name    string
		details map[string]string
		want    map[string]string
		wantKey bool
	}{
		{"field details kept", map[string]string{"quantity": "must be greater than zero"}, map[string]string{"quantity": "must be greater than zero"}, true},
		{"empty map dropped", map[string]string{}, nil, false},
		{"nil dropped", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewError(ErrCodeInvalidRequest, "invalid shipment").WithDetails(tt.details)
			assert.Equal(t, tt.want, resp.Details)

			body, err := json.Marshal(resp)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, json.Valid(body) && containsKey(t, body, "details"))
		})
	}
}

func TestNewSuccess(t *testing.T) {
	resp := NewSuccess(map[string]string{"category": "Обычные товары"}, "req-1")

	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, time.UTC, resp.Timestamp.Location())
	assert.NotNil(t, resp.Data)
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusBadRequest, ErrCodeInvalidRequest},
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusForbidden, ErrCodeForbidden},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusConflict, ErrCodeConflict},
		{http.StatusUnprocessableEntity, ErrCodeOutOfRange},
		{http.StatusTooManyRequests, ErrCodeRateLimit},
		{http.StatusServiceUnavailable, ErrCodeUnavailable},
		{http.StatusGatewayTimeout, ErrCodeTimeout},
		{http.StatusRequestTimeout, ErrCodeTimeout},
		{http.StatusInternalServerError, ErrCodeInternal},
		{http.StatusBadGateway, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, ErrCodeFromStatus(tt.status))
		})
	}
}

func containsKey(t *testing.T, body []byte, key string) bool {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	_, ok := m[key]
	return ok
}
