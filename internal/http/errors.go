package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/circuitbreaker"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/engine"
	"github.com/guttosm/cargo-quote/internal/i18n"
	"github.com/guttosm/cargo-quote/internal/middleware"
	"github.com/guttosm/cargo-quote/internal/repository"
	"github.com/guttosm/cargo-quote/internal/service"
)

// errorMapping is the HTTP status and message key for a domain error.
type errorMapping struct {
	status int
	key    string
	// detail appends the error text to the translated message.
	detail bool
}

// mapError classifies err. Unknown errors map to 500.
func mapError(err error) errorMapping {
	var (
		validationErr *engine.ValidationError
		divisionErr   *engine.DivisionByZeroError
		rangeErr      *engine.RangeNotFoundError
		rateErr       *engine.NoExchangeRateError
		tableErr      *engine.TableError
		requestErr    *dto.ValidationError
	)

	switch {
	case errors.As(err, &validationErr):
		return errorMapping{http.StatusBadRequest, i18n.ErrKeyInvalidShipment, true}
	case errors.As(err, &requestErr):
		return errorMapping{http.StatusBadRequest, i18n.ErrKeyInvalidRequest, true}
	case errors.As(err, &divisionErr):
		return errorMapping{http.StatusBadRequest, i18n.ErrKeyDivisionByZero, false}
	case errors.As(err, &tableErr):
		return errorMapping{http.StatusBadRequest, i18n.ErrKeyInvalidTariffTable, true}
	case errors.Is(err, service.ErrInvalidRate):
		return errorMapping{http.StatusBadRequest, i18n.ErrKeyInvalidRate, false}
	case errors.As(err, &rangeErr):
		return errorMapping{http.StatusUnprocessableEntity, i18n.ErrKeyOutOfRange, true}
	case errors.As(err, &rateErr):
		return errorMapping{http.StatusServiceUnavailable, i18n.ErrKeyNoExchangeRate, false}
	case errors.Is(err, service.ErrTariffsNotLoaded):
		return errorMapping{http.StatusServiceUnavailable, i18n.ErrKeyTariffsNotLoaded, false}
	case errors.Is(err, repository.ErrGatewayUnavailable), errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return errorMapping{http.StatusServiceUnavailable, i18n.ErrKeyGatewayUnavailable, false}
	case errors.Is(err, repository.ErrReadOnly):
		return errorMapping{http.StatusConflict, i18n.ErrKeyReadOnly, false}
	case errors.Is(err, service.ErrRepositoryNotConfigured):
		return errorMapping{http.StatusServiceUnavailable, i18n.ErrKeyGatewayUnavailable, false}
	case errors.Is(err, context.DeadlineExceeded):
		return errorMapping{http.StatusGatewayTimeout, i18n.ErrKeyTimeout, false}
	default:
		return errorMapping{http.StatusInternalServerError, i18n.ErrKeyInternalError, false}
	}
}

// ServiceError writes the error response for a service-layer error. Field
// validation failures also list the offending field in details.
func (b *ResponseBuilder) ServiceError(err error) {
	m := mapError(err)
	if !m.detail {
		b.Error(m.status, m.key, err)
		return
	}

	message := i18n.GetTranslator().Translate(m.key, i18n.GetLocale(b.c)) + ": " + err.Error()
	var (
		details     map[string]string
		requestErr  *dto.ValidationError
		shipmentErr *engine.ValidationError
	)
	switch {
	case errors.As(err, &requestErr):
		details = map[string]string{requestErr.Field: requestErr.Message}
	case errors.As(err, &shipmentErr):
		details = map[string]string{shipmentErr.Field: shipmentErr.Reason}
	}
	b.abort(m.status, message, details, err)
}

// auditLogger returns the logging service installed by the router, if any.
func auditLogger(c *gin.Context) service.LoggingService {
	value, exists := c.Get("logging_service")
	if !exists {
		return nil
	}
	ls, _ := value.(service.LoggingService)
	return ls
}

func audit(c *gin.Context, action model.ActionType, message string, fields map[string]interface{}) {
	if ls := auditLogger(c); ls != nil {
		middleware.AuditLog(ls, c, action, message, fields)
	}
}

func auditError(c *gin.Context, action model.ActionType, message string, err error, fields map[string]interface{}) {
	if ls := auditLogger(c); ls != nil {
		middleware.AuditLogError(ls, c, action, message, err, fields)
	}
}
