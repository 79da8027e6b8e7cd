// Package i18n provides internationalization support for the cargo quote service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyInvalidCredentials indicates an unknown operator or a wrong password.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"

	// ErrKeyInvalidShipment indicates a shipment field failed validation.
	ErrKeyInvalidShipment = "error.invalid_shipment"
	// ErrKeyDivisionByZero indicates a zero box count in a per-box calculation.
	ErrKeyDivisionByZero = "error.division_by_zero"
	// ErrKeyOutOfRange indicates the shipment matches no weight or density tier.
	ErrKeyOutOfRange = "error.out_of_range"
	// ErrKeyNoExchangeRate indicates no exchange rate is available.
	ErrKeyNoExchangeRate = "error.no_exchange_rate"
	// ErrKeyTariffsNotLoaded indicates no tariff tables were imported.
	ErrKeyTariffsNotLoaded = "error.tariffs_not_loaded"
	// ErrKeyGatewayUnavailable indicates the rate table store cannot be reached.
	ErrKeyGatewayUnavailable = "error.gateway_unavailable"
	// ErrKeyInvalidTariffTable indicates an imported table is malformed.
	ErrKeyInvalidTariffTable = "error.invalid_tariff_table"
	// ErrKeyReadOnly indicates the configured store does not accept writes.
	ErrKeyReadOnly = "error.read_only"
	// ErrKeyInvalidRate indicates a recorded exchange rate is not positive.
	ErrKeyInvalidRate = "error.invalid_rate"
	// ErrKeyIdempotencyMismatch indicates an Idempotency-Key reused with another body.
	ErrKeyIdempotencyMismatch = "error.idempotency_mismatch"
)
