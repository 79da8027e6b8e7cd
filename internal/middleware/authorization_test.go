//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupContext   func(*gin.Context)
		role           string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "no claims returns unauthorized",
			setupContext:   func(*gin.Context) {},
			role:           dto.RoleAdmin,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   dto.ErrCodeUnauthorized,
		},
		{
			name: "invalid claims type returns unauthorized",
			setupContext: func(c *gin.Context) {
				c.Set(ContextKeyClaims, "invalid")
			},
			role:           dto.RoleAdmin,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   dto.ErrCodeUnauthorized,
		},
		{
			name: "viewer is forbidden from admin routes",
			setupContext: func(c *gin.Context) {
				c.Set(ContextKeyClaims, &dto.Claims{Operator: "ivan", Role: dto.RoleViewer})
			},
			role:           dto.RoleAdmin,
			expectedStatus: http.StatusForbidden,
			expectedCode:   dto.ErrCodeForbidden,
		},
		{
			name: "admin passes admin routes",
			setupContext: func(c *gin.Context) {
				c.Set(ContextKeyClaims, &dto.Claims{Operator: "anna", Role: dto.RoleAdmin})
			},
			role:           dto.RoleAdmin,
			expectedStatus: http.StatusOK,
		},
		{
			name: "admin passes viewer routes",
			setupContext: func(c *gin.Context) {
				c.Set(ContextKeyClaims, &dto.Claims{Operator: "anna", Role: dto.RoleAdmin})
			},
			role:           dto.RoleViewer,
			expectedStatus: http.StatusOK,
		},
		{
			name: "viewer passes viewer routes",
			setupContext: func(c *gin.Context) {
				c.Set(ContextKeyClaims, &dto.Claims{Operator: "ivan", Role: dto.RoleViewer})
			},
			role:           dto.RoleViewer,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID())
			router.Use(func(c *gin.Context) {
				tt.setupContext(c)
				c.Next()
			})
			router.Use(RequireRole(tt.role))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Contains(t, w.Body.String(), tt.expectedCode)
			}
		})
	}
}
