// Package middleware provides HTTP middleware components for the cargo quote service.
package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/i18n"
	"github.com/guttosm/cargo-quote/internal/service/cache"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key (RFC standard).
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the store.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long responses are kept for replay.
	IdempotencyKeyTTL = 5 * time.Minute
)

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Store cache.ResponseStore
	TTL   time.Duration
}

// DefaultIdempotencyConfig keeps responses in process memory.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Store: cache.NewMemoryResponseStore(),
		TTL:   IdempotencyKeyTTL,
	}
}

// Idempotency replays the stored response for a repeated Idempotency-Key on
// POST and PUT requests. Reusing a key with a different body is a conflict.
// Only 2xx responses are stored, so a failed import or quote can be retried.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.Store == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	if cfg.TTL <= 0 {
		cfg.TTL = IdempotencyKeyTTL
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		storeKey := c.Request.Method + " " + c.Request.URL.Path + " " + key
		fingerprint := bodyFingerprint(c.Request)
		ctx := c.Request.Context()

		if stored, ok := cfg.Store.Load(ctx, storeKey); ok {
			if stored.Fingerprint != fingerprint {
				locale := i18n.GetLocale(c)
				errorResp := dto.NewError(dto.ErrCodeConflict, i18n.GetTranslator().Translate(i18n.ErrKeyIdempotencyMismatch, locale)).
					WithRequestID(GetRequestID(c))
				c.AbortWithStatusJSON(http.StatusConflict, errorResp)
				return
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(stored.StatusCode, stored.ContentType, stored.Body)
			c.Abort()
			return
		}

		writer := &capturingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 {
			cfg.Store.Save(ctx, storeKey, &cache.StoredResponse{
				Fingerprint: fingerprint,
				StatusCode:  status,
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
			}, cfg.TTL)
		}
	}
}

// bodyFingerprint hashes the request body and restores it for the handler.
func bodyFingerprint(req *http.Request) string {
	hasher := sha256.New()
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(body))
		hasher.Write(body)
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// capturingWriter copies the response body for storage.
type capturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
