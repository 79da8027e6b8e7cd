package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/api/categories", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/error", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "error")
	})

	tests := []struct {
		name           string
		path           string
		route          string
		expectedStatus int
	}{
		{
			name:           "records metrics for successful request",
			path:           "/api/categories",
			route:          "/api/categories",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "records metrics for error request",
			path:           "/error",
			route:          "/error",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "unknown paths share one label",
			path:           "/wp-login.php",
			route:          unmatchedRoute,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			status := strconv.Itoa(tt.expectedStatus)
			before := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, tt.route, status))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, tt.route, status)))
		})
	}
}

func TestRecordQuoteCalculation(t *testing.T) {
	before := testutil.ToFloat64(QuoteCalculationsTotal.WithLabelValues("out_of_range"))

	RecordQuoteCalculation(10*time.Millisecond, "out_of_range")
	RecordQuoteCalculation(5*time.Millisecond, "out_of_range")

	assert.Equal(t, before+2, testutil.ToFloat64(QuoteCalculationsTotal.WithLabelValues("out_of_range")))
}

func TestRecordQuoteCategory(t *testing.T) {
	before := testutil.ToFloat64(QuoteCategoriesTotal.WithLabelValues("Обычные товары"))
	RecordQuoteCategory("Обычные товары")
	assert.Equal(t, before+1, testutil.ToFloat64(QuoteCategoriesTotal.WithLabelValues("Обычные товары")))
}

func TestRecordTariffImport(t *testing.T) {
	before := testutil.ToFloat64(TariffImportsTotal.WithLabelValues("rejected"))
	RecordTariffImport("rejected")
	assert.Equal(t, before+1, testutil.ToFloat64(TariffImportsTotal.WithLabelValues("rejected")))
}

func TestRecordExchangeRateFallback(t *testing.T) {
	before := testutil.ToFloat64(ExchangeRateFallbackTotal)
	RecordExchangeRateFallback()
	assert.Equal(t, before+1, testutil.ToFloat64(ExchangeRateFallbackTotal))
}

func TestRecordEventPublish(t *testing.T) {
	before := testutil.ToFloat64(EventsPublishedTotal.WithLabelValues("quote.computed", "error"))
	RecordEventPublish("quote.computed", "error")
	assert.Equal(t, before+1, testutil.ToFloat64(EventsPublishedTotal.WithLabelValues("quote.computed", "error")))
}

func TestSetCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("tariffs", 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("tariffs")))

	SetCircuitBreakerState("tariffs", 0)
	assert.Equal(t, float64(0), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("tariffs")))
}

func TestRecordCacheOperation(t *testing.T) {
	before := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("get", "hit"))
	RecordCacheOperation("get", "hit")
	assert.Equal(t, before+1, testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("get", "hit")))
}

func TestUpdateCacheMetrics(t *testing.T) {
	UpdateCacheMetrics(75, 100)

	assert.Equal(t, float64(75), testutil.ToFloat64(CacheSize))
	assert.Equal(t, float64(100), testutil.ToFloat64(CacheCapacity))
}

func TestRecordLogEntries(t *testing.T) {
	before := testutil.ToFloat64(LogEntriesTotal.WithLabelValues("written"))
	RecordLogEntries("written", 3)
	assert.Equal(t, before+3, testutil.ToFloat64(LogEntriesTotal.WithLabelValues("written")))
}
