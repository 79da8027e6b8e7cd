// Package middleware provides role-based authorization middleware.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/i18n"
)

// RequireRole returns a middleware that lets through operators holding role.
// It must be used after JWTAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.GetLocale(c)
		requestID := GetRequestID(c)

		value, exists := c.Get(ContextKeyClaims)
		claims, ok := value.(*dto.Claims)
		if !exists || !ok {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyUnauthorized, locale)
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, message).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
			return
		}

		if !claims.HasRole(role) {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyForbidden, locale)
			errorResp := dto.NewError(dto.ErrCodeForbidden, message).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusForbidden, errorResp)
			return
		}

		c.Next()
	}
}
