package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"

	// ContextKeyAPIClient holds the short fingerprint of the API key a request used.
	ContextKeyAPIClient = "api_client"
)

// APIKeyAuth guards quote routes with the configured keys, read from the
// X-API-Key header or the api_key query parameter. Keys are compared in
// constant time and the matching key's fingerprint is stored on the context.
// With no keys configured every request passes.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	digests := make(map[string][sha256.Size]byte, len(validKeys))
	for key, enabled := range validKeys {
		if enabled && key != "" {
			digests[key] = sha256.Sum256([]byte(key))
		}
	}

	return func(c *gin.Context) {
		if len(digests) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}
		if key == "" {
			abortUnauthorized(c, i18n.ErrKeyAPIKeyRequired)
			return
		}

		presented := sha256.Sum256([]byte(key))
		matched := 0
		for _, digest := range digests {
			matched |= subtle.ConstantTimeCompare(presented[:], digest[:])
		}
		if matched != 1 {
			abortUnauthorized(c, i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Set(ContextKeyAPIClient, APIKeyFingerprint(key))
		c.Next()
	}
}

// APIKeyFingerprint identifies a key in logs without revealing it.
func APIKeyFingerprint(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:4])
}

// APIClientFromContext returns the fingerprint stored by APIKeyAuth.
func APIClientFromContext(c *gin.Context) string {
	return c.GetString(ContextKeyAPIClient)
}

func abortUnauthorized(c *gin.Context, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
}
