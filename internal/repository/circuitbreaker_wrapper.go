package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/cargo-quote/internal/circuitbreaker"
	"github.com/guttosm/cargo-quote/internal/domain/model"
)

// IsGatewayFailure reports whether err should count against a store's
// circuit breaker. Read-only rejections and decode errors are not
// connectivity problems.
func IsGatewayFailure(err error) bool {
	return !errors.Is(err, context.Canceled) &&
		!errors.Is(err, ErrReadOnly) &&
		!errors.Is(err, ErrCorruptRecord)
}

// guard runs fn through cb and turns an open circuit into ErrGatewayUnavailable.
func guard[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var fnErr error
		result, fnErr = fn()
		return fnErr
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		var zero T
		return zero, fmt.Errorf("%w: %s: %w", ErrGatewayUnavailable, cb.Name(), err)
	}
	return result, err
}

// TariffRepositoryWithCircuitBreaker wraps a tariff store with circuit breaker protection.
type TariffRepositoryWithCircuitBreaker struct {
	repo           TariffRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewTariffRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewTariffRepositoryWithCircuitBreaker(repo TariffRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *TariffRepositoryWithCircuitBreaker {
	return &TariffRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// GetActive returns the active tariff set.
func (r *TariffRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*model.TariffSnapshot, error) {
	return guard(ctx, r.circuitBreaker, func() (*model.TariffSnapshot, error) {
		return r.repo.GetActive(ctx)
	})
}

// Create stores a new tariff set.
func (r *TariffRepositoryWithCircuitBreaker) Create(ctx context.Context, weights []model.WeightTariffRow, densities []model.DensityTariffRow, createdBy string) (*model.TariffSnapshot, error) {
	return guard(ctx, r.circuitBreaker, func() (*model.TariffSnapshot, error) {
		return r.repo.Create(ctx, weights, densities, createdBy)
	})
}

// List returns tariff set history.
func (r *TariffRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]model.TariffSetSummary, error) {
	return guard(ctx, r.circuitBreaker, func() ([]model.TariffSetSummary, error) {
		return r.repo.List(ctx, limit)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *TariffRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// ExchangeRateRepositoryWithCircuitBreaker wraps a rate store with circuit breaker protection.
type ExchangeRateRepositoryWithCircuitBreaker struct {
	repo           ExchangeRateRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewExchangeRateRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewExchangeRateRepositoryWithCircuitBreaker(repo ExchangeRateRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ExchangeRateRepositoryWithCircuitBreaker {
	return &ExchangeRateRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Latest returns the latest rate for pair.
func (r *ExchangeRateRepositoryWithCircuitBreaker) Latest(ctx context.Context, pair model.CurrencyPair) (*model.ExchangeRate, error) {
	return guard(ctx, r.circuitBreaker, func() (*model.ExchangeRate, error) {
		return r.repo.Latest(ctx, pair)
	})
}

// Record stores a rate observation.
func (r *ExchangeRateRepositoryWithCircuitBreaker) Record(ctx context.Context, rate model.ExchangeRate) error {
	_, err := guard(ctx, r.circuitBreaker, func() (struct{}, error) {
		return struct{}{}, r.repo.Record(ctx, rate)
	})
	return err
}

// History returns recorded rates for pair.
func (r *ExchangeRateRepositoryWithCircuitBreaker) History(ctx context.Context, pair model.CurrencyPair, limit int) ([]model.ExchangeRate, error) {
	return guard(ctx, r.circuitBreaker, func() ([]model.ExchangeRate, error) {
		return r.repo.History(ctx, pair, limit)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ExchangeRateRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// QuoteRepositoryWithCircuitBreaker wraps a quote store with circuit breaker protection.
type QuoteRepositoryWithCircuitBreaker struct {
	repo           QuoteRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewQuoteRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewQuoteRepositoryWithCircuitBreaker(repo QuoteRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *QuoteRepositoryWithCircuitBreaker {
	return &QuoteRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Create stores a quote record. Quote history is non-critical, so an open
// circuit drops the record.
func (r *QuoteRepositoryWithCircuitBreaker) Create(ctx context.Context, record *model.QuoteRecord) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, record)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// List returns recent quotes.
func (r *QuoteRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]model.QuoteRecord, error) {
	return guard(ctx, r.circuitBreaker, func() ([]model.QuoteRecord, error) {
		return r.repo.List(ctx, limit)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *QuoteRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps a log store with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Create stores a single log entry. Logging is non-critical, so an open
// circuit drops the entry.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores multiple log entries. An open circuit drops them.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return guard(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

// Count returns the number of matching log entries.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return guard(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
