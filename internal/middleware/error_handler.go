package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/i18n"
	"github.com/guttosm/cargo-quote/internal/logger"
)

// ErrorHandler answers requests whose handler recorded an error on the
// context but never wrote a response. Bind errors become 400, everything
// else 500. Responses already written are left to RequestLogger.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		status, key := http.StatusInternalServerError, i18n.ErrKeyInternalError
		if last.IsType(gin.ErrorTypeBind) {
			status, key = http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody
		}

		requestID := GetRequestID(c)
		log := logger.ForRequest(requestID)
		log.Error().
			Strs("errors", c.Errors.Errors()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Int("status_code", status).
			Msg("Handler returned without a response")

		message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
		c.AbortWithStatusJSON(status, dto.NewError(dto.ErrCodeFromStatus(status), message).WithRequestID(requestID))
	}
}
