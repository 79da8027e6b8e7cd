package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/cargo-quote/internal/domain/model"
)

// Error codes returned in ErrorResponse.Error.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInternal       = "internal_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeForbidden      = "forbidden"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeConflict       = "conflict"
	ErrCodeTimeout        = "timeout"
	// ErrCodeOutOfRange indicates a shipment outside every tariff range.
	ErrCodeOutOfRange = "out_of_range"
	// ErrCodeUnavailable indicates the rate tables or exchange rate cannot be read.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2026-03-01T10:00:00Z"`
} // @name SuccessResponse

// NewSuccess wraps data for requestID.
func NewSuccess(data interface{}, requestID string) SuccessResponse {
	return SuccessResponse{
		Data:      data,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
	}
}

// ErrorResponse is the body of every failed API call.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"quantity: must be greater than zero"`
	// Details maps a request field to what is wrong with it.
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-03-01T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetails sets the per-field details. An empty map is dropped.
func (e ErrorResponse) WithDetails(details map[string]string) ErrorResponse {
	if len(details) == 0 {
		e.Details = nil
		return e
	}
	e.Details = details
	return e
}

// ErrCodeFromStatus returns the error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusUnprocessableEntity:
		return ErrCodeOutOfRange
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeInternal
	}
}

// AuditPage is one page of the audit and request log.
// @Description Audit log page, newest first
type AuditPage struct {
	Entries []model.LogEntry `json:"entries"`
	Total   int64            `json:"total" example:"120"`
	Limit   int              `json:"limit" example:"50"`
	Offset  int              `json:"offset" example:"0"`
} // @name AuditPage
