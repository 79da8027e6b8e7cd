package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/metrics"
	"github.com/guttosm/cargo-quote/internal/repository"
)

// FallbackRateSource labels a rate that came from configuration rather than the store.
const FallbackRateSource = "fallback"

// ErrInvalidRate is returned when a recorded rate is not positive.
var ErrInvalidRate = errors.New("exchange rate must be greater than zero")

// ExchangeRateService provides the rate used to convert declared values.
type ExchangeRateService interface {
	// Pair returns the currency pair the service serves.
	Pair() model.CurrencyPair
	// Current returns the latest recorded rate, the configured fallback, or
	// nil when neither exists.
	Current(ctx context.Context) (*model.ExchangeRate, error)
	// Record stores a new rate observation for the service's pair.
	Record(ctx context.Context, rate decimal.Decimal, source, notes string) (*model.ExchangeRate, error)
	// History lists recorded rates, newest first.
	History(ctx context.Context, limit int) ([]model.ExchangeRate, error)
}

// ExchangeRateServiceImpl implements ExchangeRateService.
type ExchangeRateServiceImpl struct {
	repo     repository.ExchangeRateRepositoryInterface
	pair     model.CurrencyPair
	fallback *decimal.Decimal
	now      func() time.Time
}

// NewExchangeRateService creates a rate service for pair. A nil fallback
// disables the fallback rate.
func NewExchangeRateService(repo repository.ExchangeRateRepositoryInterface, pair model.CurrencyPair, fallback *decimal.Decimal) *ExchangeRateServiceImpl {
	return &ExchangeRateServiceImpl{
		repo:     repo,
		pair:     pair,
		fallback: fallback,
		now:      time.Now,
	}
}

// Pair returns the currency pair the service serves.
func (s *ExchangeRateServiceImpl) Pair() model.CurrencyPair {
	return s.pair
}

// Current returns the latest recorded rate for the pair. When the store has
// no rate, or cannot be reached, the configured fallback is returned instead.
func (s *ExchangeRateServiceImpl) Current(ctx context.Context) (*model.ExchangeRate, error) {
	if s.repo != nil {
		rate, err := s.repo.Latest(ctx, s.pair)
		switch {
		case err == nil && rate != nil:
			return rate, nil
		case err != nil && s.fallback == nil:
			return nil, fmt.Errorf("load exchange rate %s: %w", s.pair, err)
		case err != nil:
			log.Warn().Err(err).Str("pair", s.pair.String()).Msg("exchange rate store unavailable, using fallback")
		}
	}

	if s.fallback == nil {
		return nil, nil
	}
	metrics.RecordExchangeRateFallback()
	return &model.ExchangeRate{
		Pair:   s.pair,
		Rate:   *s.fallback,
		Source: FallbackRateSource,
	}, nil
}

// Record stores a new rate observation.
func (s *ExchangeRateServiceImpl) Record(ctx context.Context, rate decimal.Decimal, source, notes string) (*model.ExchangeRate, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if !rate.IsPositive() {
		return nil, ErrInvalidRate
	}

	source = strings.TrimSpace(source)
	if source == "" {
		source = "manual"
	}
	observation := model.ExchangeRate{
		Pair:       s.pair,
		Rate:       rate,
		RecordedAt: s.now().UTC(),
		Source:     source,
		Notes:      strings.TrimSpace(notes),
	}
	if err := s.repo.Record(ctx, observation); err != nil {
		return nil, fmt.Errorf("record exchange rate: %w", err)
	}

	log.Info().
		Str("pair", s.pair.String()).
		Str("rate", rate.String()).
		Str("source", source).
		Msg("exchange rate recorded")
	return &observation, nil
}

// History lists recorded rates, newest first.
func (s *ExchangeRateServiceImpl) History(ctx context.Context, limit int) ([]model.ExchangeRate, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.History(ctx, s.pair, limit)
}
