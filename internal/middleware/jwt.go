// Package middleware provides JWT authentication middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/i18n"
	"github.com/guttosm/cargo-quote/internal/service"
)

// RefreshTokenHeader carries a refresh token on refresh and logout.
const RefreshTokenHeader = "X-Refresh-Token"

// Context keys set by JWTAuth.
const (
	ContextKeyOperator = "operator"
	ContextKeyRole     = "operator_role"
	ContextKeyClaims   = "operator_claims"
)

// JWTAuth returns a middleware that validates operator access tokens.
func JWTAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.GetLocale(c)
		requestID := GetRequestID(c)

		tokenString, ok := BearerToken(c)
		if !ok {
			key := i18n.ErrKeyTokenRequired
			if c.GetHeader("Authorization") != "" {
				key = i18n.ErrKeyInvalidToken
			}
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, i18n.GetTranslator().Translate(key, locale)).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidToken, locale)
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, message).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
			return
		}

		c.Set(ContextKeyOperator, claims.Operator)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// OperatorFromContext returns the authenticated operator and role, if any.
func OperatorFromContext(c *gin.Context) (operator, role string) {
	operator = c.GetString(ContextKeyOperator)
	role = c.GetString(ContextKeyRole)
	return operator, role
}
