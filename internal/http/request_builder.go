package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/i18n"
	"github.com/guttosm/cargo-quote/internal/middleware"
)

// Validator is implemented by request DTOs that check themselves after binding.
type Validator interface {
	Validate() error
}

// bindError is a request that could not be decoded. key is the message
// reported to the client.
type bindError struct {
	key string
	err error
}

func (e *bindError) Error() string { return e.err.Error() }
func (e *bindError) Unwrap() error { return e.err }

// BindJSON decodes the JSON body into a T and validates it.
func BindJSON[T any](c *gin.Context) (*T, error) {
	return bindWith[T](c, binding.JSON, i18n.ErrKeyInvalidRequestBody)
}

// BindQuery decodes the query string into a T and validates it.
func BindQuery[T any](c *gin.Context) (*T, error) {
	return bindWith[T](c, binding.Query, i18n.ErrKeyInvalidRequest)
}

func bindWith[T any](c *gin.Context, b binding.Binding, key string) (*T, error) {
	var req T
	if err := c.ShouldBindWith(&req, b); err != nil {
		return nil, &bindError{key: key, err: err}
	}
	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// ResponseBuilder writes the success and error envelopes for one request.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends data in the success envelope.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.c.JSON(statusCode, dto.NewSuccess(data, middleware.GetRequestID(b.c)))
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error aborts with the translated message for messageKey. err, when set,
// is attached to the context for the request logger.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	b.abort(statusCode, message, nil, err)
}

// ErrorWithMessage aborts with an already formatted message.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.abort(statusCode, message, nil, err)
}

// BindError writes the response for a request that failed to bind or validate.
func (b *ResponseBuilder) BindError(err error) {
	var be *bindError
	if errors.As(err, &be) {
		b.Error(http.StatusBadRequest, be.key, err)
		return
	}
	b.ServiceError(err)
}

func (b *ResponseBuilder) abort(statusCode int, message string, details map[string]string, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(statusCode, dto.NewError(dto.ErrCodeFromStatus(statusCode), message).
		WithRequestID(middleware.GetRequestID(b.c)).
		WithDetails(details))
}
