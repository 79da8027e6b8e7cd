package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/middleware"
	"github.com/guttosm/cargo-quote/internal/mocks"
	"github.com/guttosm/cargo-quote/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(authService service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())

	handler := NewAuthHandler(authService)
	router.POST("/api/auth/token", handler.Token)
	router.POST("/api/auth/refresh", handler.RefreshToken)
	router.POST("/api/auth/logout", handler.Logout)
	router.GET("/api/auth/me", handler.Me)
	return router
}

func TestAuthHandler_Token(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name: "successful login",
			body: `{"operator": "anna", "password": "secret123"}`,
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("Login", mock.Anything, "anna", "secret123").Return(
					&dto.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900},
					&dto.Claims{Operator: "anna", Role: dto.RoleAdmin},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var resp struct {
					Data dto.LoginResponse `json:"data"`
				}
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "access", resp.Data.Token)
				assert.Equal(t, "refresh", resp.Data.RefreshToken)
				assert.Equal(t, int64(900), resp.Data.ExpiresIn)
				assert.Equal(t, dto.OperatorResponse{Name: "anna", Role: dto.RoleAdmin}, resp.Data.Operator)
			},
		},
		{
			name: "wrong password",
			body: `{"operator": "anna", "password": "wrong-password"}`,
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("Login", mock.Anything, "anna", "wrong-password").Return(nil, nil, service.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "token store failure",
			body: `{"operator": "anna", "password": "secret123"}`,
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("Login", mock.Anything, "anna", "secret123").Return(nil, nil, errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "missing password",
			body:           `{"operator": "anna"}`,
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			body:           `{"operator": `,
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := mocks.NewMockAuthService(t)
			tt.setupMocks(authService)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/token", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			newAuthRouter(authService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w.Body.Bytes())
			}
		})
	}
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	pair := &dto.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh", ExpiresIn: 900}

	tests := []struct {
		name           string
		header         string
		body           string
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
	}{
		{
			name:   "token in header",
			header: "refresh-token",
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("RefreshToken", mock.Anything, "refresh-token").Return(pair, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "token in body",
			body: `{"refresh_token": "body-token"}`,
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("RefreshToken", mock.Anything, "body-token").Return(pair, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no token",
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "revoked token",
			header: "revoked",
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("RefreshToken", mock.Anything, "revoked").Return(nil, service.ErrTokenBlacklisted)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			header: "expired",
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("RefreshToken", mock.Anything, "expired").Return(nil, service.ErrInvalidToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := mocks.NewMockAuthService(t)
			tt.setupMocks(authService)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.header != "" {
				req.Header.Set("X-Refresh-Token", tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter(authService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"token":"new-access"`)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	tests := []struct {
		name           string
		authorization  string
		refreshToken   string
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
	}{
		{
			name:          "revokes both tokens",
			authorization: "Bearer access",
			refreshToken:  "refresh",
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("Logout", mock.Anything, "access", "refresh").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:          "access token only",
			authorization: "Bearer access",
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("Logout", mock.Anything, "access", "").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing bearer token",
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "invalid token",
			authorization: "Bearer forged",
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("Logout", mock.Anything, "forged", "").Return(service.ErrInvalidToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "token store failure",
			authorization: "Bearer access",
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("Logout", mock.Anything, "access", "").Return(errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := mocks.NewMockAuthService(t)
			tt.setupMocks(authService)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			if tt.refreshToken != "" {
				req.Header.Set("X-Refresh-Token", tt.refreshToken)
			}
			w := httptest.NewRecorder()
			newAuthRouter(authService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("without operator context", func(t *testing.T) {
		w := httptest.NewRecorder()
		newAuthRouter(mocks.NewMockAuthService(t)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("with operator context", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set(middleware.ContextKeyOperator, "anna")
			c.Set(middleware.ContextKeyRole, dto.RoleAdmin)
			c.Next()
		})
		router.GET("/api/auth/me", NewAuthHandler(mocks.NewMockAuthService(t)).Me)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data dto.OperatorResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "anna", resp.Data.Name)
		assert.Equal(t, dto.RoleAdmin, resp.Data.Role)
	})
}
