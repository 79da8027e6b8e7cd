package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/middleware"
	"github.com/guttosm/cargo-quote/internal/mocks"
	"github.com/guttosm/cargo-quote/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuditRouter(logs *mocks.MockLoggingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/api/audit", NewAuditHandler(logs).List)
	return router
}

func TestAuditHandler_List(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	imported := model.LogEntry{
		Timestamp:  from.Add(time.Hour),
		Level:      "info",
		Message:    "Tariff tables imported",
		Operator:   "anna",
		Role:       "admin",
		ActionType: model.ActionTariffImport,
	}

	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockLoggingService)
		expectedStatus int
		expectedBody   string
		check          func(t *testing.T, page dto.AuditPage)
	}{
		{
			name:  "default page",
			query: "",
			setupMocks: func(m *mocks.MockLoggingService) {
				opts := model.LogQueryOptions{Limit: dto.DefaultAuditLimit}
				m.On("QueryLogs", mock.Anything, opts).Return([]model.LogEntry{imported}, nil)
				m.On("CountLogs", mock.Anything, opts).Return(int64(1), nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, page dto.AuditPage) {
				require.Len(t, page.Entries, 1)
				assert.Equal(t, model.ActionTariffImport, page.Entries[0].ActionType)
				assert.Equal(t, int64(1), page.Total)
				assert.Equal(t, dto.DefaultAuditLimit, page.Limit)
			},
		},
		{
			name:  "filters and time range",
			query: "?operator=anna&action=tariff_import&level=INFO&from=2026-03-01T00:00:00Z&to=2026-03-02T03:00:00%2B03:00&limit=10&offset=20",
			setupMocks: func(m *mocks.MockLoggingService) {
				opts := mock.MatchedBy(func(o model.LogQueryOptions) bool {
					return o.Operator == "anna" &&
						o.ActionType == model.ActionTariffImport &&
						o.Level == "info" &&
						o.StartTime != nil && o.StartTime.Equal(from) &&
						o.EndTime != nil && o.EndTime.Equal(to) &&
						o.Limit == 10 && o.Skip == 20
				})
				m.On("QueryLogs", mock.Anything, opts).Return([]model.LogEntry{}, nil)
				m.On("CountLogs", mock.Anything, opts).Return(int64(21), nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, page dto.AuditPage) {
				assert.Empty(t, page.Entries)
				assert.NotNil(t, page.Entries)
				assert.Equal(t, int64(21), page.Total)
				assert.Equal(t, 20, page.Offset)
			},
		},
		{
			name:  "limit capped",
			query: "?limit=100000",
			setupMocks: func(m *mocks.MockLoggingService) {
				opts := model.LogQueryOptions{Limit: dto.MaxAuditLimit}
				m.On("QueryLogs", mock.Anything, opts).Return(nil, nil)
				m.On("CountLogs", mock.Anything, opts).Return(int64(0), nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, page dto.AuditPage) {
				assert.Equal(t, dto.MaxAuditLimit, page.Limit)
				assert.NotNil(t, page.Entries)
			},
		},
		{
			name:           "unknown action",
			query:          "?action=delete_everything",
			setupMocks:     func(*mocks.MockLoggingService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"action":"unknown action"`,
		},
		{
			name:           "inverted time range",
			query:          "?from=2026-03-02T00:00:00Z&to=2026-03-01T00:00:00Z",
			setupMocks:     func(*mocks.MockLoggingService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"to":"must not be before from"`,
		},
		{
			name:           "malformed timestamp",
			query:          "?from=yesterday",
			setupMocks:     func(*mocks.MockLoggingService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"from"`,
		},
		{
			name:           "non-numeric limit",
			query:          "?limit=ten",
			setupMocks:     func(*mocks.MockLoggingService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   dto.ErrCodeInvalidRequest,
		},
		{
			name:  "log store unavailable",
			query: "",
			setupMocks: func(m *mocks.MockLoggingService) {
				m.On("QueryLogs", mock.Anything, mock.Anything).Return(nil, repository.ErrGatewayUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   dto.ErrCodeUnavailable,
		},
		{
			name:  "count fails",
			query: "",
			setupMocks: func(m *mocks.MockLoggingService) {
				m.On("QueryLogs", mock.Anything, mock.Anything).Return([]model.LogEntry{imported}, nil)
				m.On("CountLogs", mock.Anything, mock.Anything).Return(int64(0), errors.New("count failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := mocks.NewMockLoggingService(t)
			tt.setupMocks(logs)

			req := httptest.NewRequest(http.MethodGet, "/api/audit"+tt.query, nil)
			w := httptest.NewRecorder()
			newAuditRouter(logs).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			if tt.check != nil {
				var resp struct {
					Data dto.AuditPage `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				tt.check(t, resp.Data)
			}
		})
	}
}
