// Package service contains the business logic of the cargo quote service:
// tariff snapshots, exchange rates, quoting, operator auth and audit logs.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/engine"
	"github.com/guttosm/cargo-quote/internal/events"
	"github.com/guttosm/cargo-quote/internal/metrics"
	"github.com/guttosm/cargo-quote/internal/repository"
	"github.com/guttosm/cargo-quote/internal/service/cache"
)

type requestIDKey struct{}

// WithRequestID attaches a request ID to ctx so it ends up in the quote record.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// QuoteService prices shipments against the active tariff tables.
type QuoteService interface {
	// Quote normalizes raw, prices it and records the result in history.
	Quote(ctx context.Context, raw engine.RawShipment) (*model.QuoteRecord, error)
	// History lists recent quotes, newest first.
	History(ctx context.Context, limit int) ([]model.QuoteRecord, error)
}

// QuoteOption configures a QuoteServiceImpl.
type QuoteOption func(*QuoteServiceImpl)

// WithQuoteResultCache caches computed results.
func WithQuoteResultCache(c cache.Cache) QuoteOption {
	return func(s *QuoteServiceImpl) {
		s.cache = c
	}
}

// WithQuoteHistory stores every computed quote in repo.
func WithQuoteHistory(repo repository.QuoteRepositoryInterface) QuoteOption {
	return func(s *QuoteServiceImpl) {
		s.history = repo
	}
}

// WithPublisher publishes a QuoteComputed event for every quote.
func WithPublisher(p events.Publisher) QuoteOption {
	return func(s *QuoteServiceImpl) {
		s.publisher = p
	}
}

// WithDefaultSourceCurrency sets the currency assumed when a request names none.
func WithDefaultSourceCurrency(currency string) QuoteOption {
	return func(s *QuoteServiceImpl) {
		if currency = strings.TrimSpace(currency); currency != "" {
			s.defaultCurrency = strings.ToUpper(currency)
		}
	}
}

// WithSupportedCurrencies limits the source currencies a request may name.
// By default only the default source currency and the pricing currency are
// accepted, since those are the only ones a rate exists for.
func WithSupportedCurrencies(currencies ...string) QuoteOption {
	return func(s *QuoteServiceImpl) {
		s.supported = make(map[string]struct{}, len(currencies))
		for _, c := range currencies {
			if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
				s.supported[c] = struct{}{}
			}
		}
	}
}

// QuoteServiceImpl implements QuoteService.
type QuoteServiceImpl struct {
	engine          *engine.Engine
	tariffs         TariffService
	rates           ExchangeRateService
	cache           cache.Cache
	history         repository.QuoteRepositoryInterface
	publisher       events.Publisher
	defaultCurrency string
	supported       map[string]struct{}
	now             func() time.Time
	persistTimeout  time.Duration
	wg              sync.WaitGroup
}

// NewQuoteService creates a quote service.
func NewQuoteService(eng *engine.Engine, tariffs TariffService, rates ExchangeRateService, opts ...QuoteOption) *QuoteServiceImpl {
	s := &QuoteServiceImpl{
		engine:          eng,
		tariffs:         tariffs,
		rates:           rates,
		publisher:       events.NoopPublisher{},
		defaultCurrency: engine.DefaultSourceCurrency,
		now:             time.Now,
		persistTimeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.supported) == 0 {
		WithSupportedCurrencies(s.defaultCurrency, eng.Config().PricingCurrency)(s)
	}
	return s
}

// Quote normalizes raw and prices it. The tariff snapshot and the exchange
// rate are each read once, so the whole quote sees one consistent state.
func (s *QuoteServiceImpl) Quote(ctx context.Context, raw engine.RawShipment) (*model.QuoteRecord, error) {
	start := time.Now()

	if strings.TrimSpace(raw.Currency) == "" {
		raw.Currency = s.defaultCurrency
	}
	input, err := engine.Normalize(raw)
	if err == nil {
		err = s.checkCurrency(input.SourceCurrency)
	}
	if err != nil {
		metrics.RecordQuoteCalculation(time.Since(start), quoteStatus(err))
		return nil, err
	}

	snapshot, err := s.tariffs.Snapshot(ctx)
	if err != nil {
		metrics.RecordQuoteCalculation(time.Since(start), quoteStatus(err))
		log.Error().Err(err).Str("request_id", requestIDFrom(ctx)).Msg("tariff tables unavailable")
		return nil, err
	}

	var rate *model.ExchangeRate
	if input.SourceCurrency != s.engine.Config().PricingCurrency {
		rate, err = s.rates.Current(ctx)
		if err != nil {
			metrics.RecordQuoteCalculation(time.Since(start), quoteStatus(err))
			log.Error().Err(err).Str("request_id", requestIDFrom(ctx)).Msg("exchange rate unavailable")
			return nil, err
		}
	}

	key := quoteCacheKey(snapshot.Version, input, rate)
	result, hit := s.cached(ctx, key)
	if !hit {
		result, err = s.engine.ComputeSnapshot(input, snapshot, rate)
		if err != nil {
			metrics.RecordQuoteCalculation(time.Since(start), quoteStatus(err))
			var rangeErr *engine.RangeNotFoundError
			if errors.As(err, &rangeErr) {
				log.Warn().Err(err).Str("request_id", requestIDFrom(ctx)).Str("category", input.Category).Msg("shipment outside tariff ranges")
			}
			return nil, err
		}
		if s.cache != nil {
			s.cache.Set(ctx, key, *result)
		}
	}

	metrics.RecordQuoteCalculation(time.Since(start), "success")
	metrics.RecordQuoteCategory(input.Category)

	record := &model.QuoteRecord{
		ID:            uuid.NewString(),
		RequestID:     requestIDFrom(ctx),
		CreatedAt:     s.now().UTC(),
		TariffVersion: snapshot.Version,
		Input:         input,
		Result:        *result,
	}
	s.persist(record)

	log.Debug().
		Str("quote_id", record.ID).
		Str("request_id", record.RequestID).
		Str("category", input.Category).
		Str("tariff_version", snapshot.Version).
		Bool("cached", hit).
		Msg("quote computed")
	return record, nil
}

func (s *QuoteServiceImpl) checkCurrency(currency string) error {
	if _, ok := s.supported[currency]; ok {
		return nil
	}
	names := make([]string, 0, len(s.supported))
	for c := range s.supported {
		names = append(names, c)
	}
	slices.Sort(names)
	return &engine.ValidationError{
		Field:  "currency",
		Reason: "must be one of " + strings.Join(names, ", "),
	}
}

func (s *QuoteServiceImpl) cached(ctx context.Context, key string) (*model.QuoteResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	result, ok := s.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	return &result, true
}

// persist stores the record and publishes its event in the background.
// Failures are logged and never fail the quote.
func (s *QuoteServiceImpl) persist(record *model.QuoteRecord) {
	if s.history == nil && s.publisher == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
		defer cancel()

		if s.history != nil {
			if err := s.history.Create(ctx, record); err != nil {
				log.Error().Err(err).Str("quote_id", record.ID).Msg("failed to store quote")
			}
		}
		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, record.ID, events.NewQuoteComputed(record)); err != nil {
				log.Warn().Err(err).Str("quote_id", record.ID).Msg("failed to publish quote event")
			}
		}
	}()
}

// Wait blocks until background persistence has finished.
func (s *QuoteServiceImpl) Wait() {
	s.wg.Wait()
}

// History lists recent quotes, newest first.
func (s *QuoteServiceImpl) History(ctx context.Context, limit int) ([]model.QuoteRecord, error) {
	if s.history == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.history.List(ctx, limit)
}

// quoteCacheKey identifies a quote by everything that determines its result.
func quoteCacheKey(version string, in model.ShipmentInput, rate *model.ExchangeRate) string {
	var b strings.Builder
	b.WriteString(version)
	for _, part := range []string{
		in.Category,
		string(in.WeightMode),
		strconv.Itoa(in.Quantity),
		in.WeightPerBox.String(),
		in.Length.String(),
		in.Width.String(),
		in.Height.String(),
		in.TotalWeight.String(),
		in.TotalVolume.String(),
		in.DeclaredValue.String(),
		in.SourceCurrency,
	} {
		b.WriteByte('|')
		b.WriteString(part)
	}
	if rate != nil {
		b.WriteByte('|')
		b.WriteString(rate.Rate.String())
		b.WriteByte('|')
		b.WriteString(rate.Source)
	}
	return b.String()
}

// quoteStatus classifies err for the quote metrics.
func quoteStatus(err error) string {
	var (
		validation *engine.ValidationError
		division   *engine.DivisionByZeroError
		outOfRange *engine.RangeNotFoundError
		noRate     *engine.NoExchangeRateError
	)
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &validation), errors.As(err, &division):
		return "invalid"
	case errors.As(err, &outOfRange):
		return "out_of_range"
	case errors.As(err, &noRate):
		return "no_rate"
	default:
		return "error"
	}
}

// String describes the service for startup logs.
func (s *QuoteServiceImpl) String() string {
	cfg := s.engine.Config()
	return fmt.Sprintf("quote service (policy=%s basis=%s pricing=%s)", cfg.InsurancePolicy.Name, cfg.PackagingBasis, cfg.PricingCurrency)
}
