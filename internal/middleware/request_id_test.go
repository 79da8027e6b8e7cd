package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		header     string
		wantHeader bool
	}{
		{name: "generated when missing"},
		{name: "client id kept", header: "quote-2024-05-01:abc.1", wantHeader: true},
		{name: "uuid kept", header: "0d3c6f3e-9d0b-4a51-9f51-2d7f7f9ab001", wantHeader: true},
		{name: "spaces replaced", header: "my request"},
		{name: "newline replaced", header: "abc\r\nX-Injected: 1"},
		{name: "too long replaced", header: strings.Repeat("a", maxRequestIDLength+1)},
		{name: "max length kept", header: strings.Repeat("a", maxRequestIDLength), wantHeader: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID())
			router.POST("/api/quotes", func(c *gin.Context) {
				c.String(http.StatusOK, GetRequestID(c))
			})

			req := httptest.NewRequest(http.MethodPost, "/api/quotes", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			id := w.Body.String()
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, id, w.Header().Get(RequestIDHeader))
			if tt.wantHeader {
				assert.Equal(t, tt.header, id)
				return
			}
			_, err := uuid.Parse(id)
			assert.NoError(t, err)
		})
	}
}

func TestGetRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"not set", nil, ""},
		{"set", "req-42", "req-42"},
		{"wrong type", 42, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/healthz", nil)
			if tt.value != nil {
				c.Set(string(RequestIDKey), tt.value)
			}
			assert.Equal(t, tt.want, GetRequestID(c))
		})
	}
}
