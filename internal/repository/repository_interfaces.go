package repository

import (
	"context"
	"errors"

	"github.com/guttosm/cargo-quote/internal/domain/model"
)

var (
	// ErrReadOnly is returned by stores that cannot be written to.
	ErrReadOnly = errors.New("store is read-only")
	// ErrGatewayUnavailable is returned when a store cannot be reached.
	ErrGatewayUnavailable = errors.New("rate table gateway unavailable")
	// ErrCorruptRecord is returned when a stored value cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt record")
)

// TariffRepositoryInterface stores versioned weight and density tariff tables.
type TariffRepositoryInterface interface {
	// GetActive returns the current tables, or nil when none were imported.
	GetActive(ctx context.Context) (*model.TariffSnapshot, error)
	// Create stores a new active version and retires the previous one.
	Create(ctx context.Context, weights []model.WeightTariffRow, densities []model.DensityTariffRow, createdBy string) (*model.TariffSnapshot, error)
	// List returns version history, newest first.
	List(ctx context.Context, limit int) ([]model.TariffSetSummary, error)
}

// ExchangeRateRepositoryInterface stores exchange rate observations.
type ExchangeRateRepositoryInterface interface {
	// Latest returns the most recent rate for pair, or nil when none exists.
	Latest(ctx context.Context, pair model.CurrencyPair) (*model.ExchangeRate, error)
	Record(ctx context.Context, rate model.ExchangeRate) error
	History(ctx context.Context, pair model.CurrencyPair, limit int) ([]model.ExchangeRate, error)
}

// QuoteRepositoryInterface stores computed quotes.
type QuoteRepositoryInterface interface {
	Create(ctx context.Context, record *model.QuoteRecord) error
	List(ctx context.Context, limit int) ([]model.QuoteRecord, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

// HealthChecker is implemented by stores that can report connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
