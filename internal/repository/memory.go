package repository

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/guttosm/cargo-quote/internal/domain/model"
)

// MemoryTariffRepository keeps tariff sets in process memory.
type MemoryTariffRepository struct {
	mu   sync.RWMutex
	sets []memoryTariffSet
	now  func() time.Time
}

type memoryTariffSet struct {
	snapshot  *model.TariffSnapshot
	createdBy string
}

// NewMemoryTariffRepository creates an empty in-memory tariff store.
func NewMemoryTariffRepository() *MemoryTariffRepository {
	return &MemoryTariffRepository{now: time.Now}
}

// GetActive returns the newest tariff set.
func (r *MemoryTariffRepository) GetActive(context.Context) (*model.TariffSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.sets) == 0 {
		return nil, nil
	}
	return r.sets[len(r.sets)-1].snapshot, nil
}

// Create stores copies of the rows as the next version.
func (r *MemoryTariffRepository) Create(_ context.Context, weights []model.WeightTariffRow, densities []model.DensityTariffRow, createdBy string) (*model.TariffSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := &model.TariffSnapshot{
		Version:     strconv.Itoa(len(r.sets) + 1),
		LoadedAt:    r.now().UTC(),
		WeightRows:  append([]model.WeightTariffRow(nil), weights...),
		DensityRows: append([]model.DensityTariffRow(nil), densities...),
	}
	r.sets = append(r.sets, memoryTariffSet{snapshot: snapshot, createdBy: createdBy})
	return snapshot, nil
}

// List returns tariff set summaries, newest first.
func (r *MemoryTariffRepository) List(_ context.Context, limit int) ([]model.TariffSetSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]model.TariffSetSummary, 0, len(r.sets))
	for i := len(r.sets) - 1; i >= 0; i-- {
		if limit > 0 && len(summaries) == limit {
			break
		}
		set := r.sets[i]
		summaries = append(summaries, model.TariffSetSummary{
			Version:     set.snapshot.Version,
			Active:      i == len(r.sets)-1,
			CreatedAt:   set.snapshot.LoadedAt,
			CreatedBy:   set.createdBy,
			WeightRows:  len(set.snapshot.WeightRows),
			DensityRows: len(set.snapshot.DensityRows),
		})
	}
	return summaries, nil
}

// MemoryExchangeRateRepository keeps exchange rates in process memory.
type MemoryExchangeRateRepository struct {
	mu    sync.RWMutex
	rates map[model.CurrencyPair][]model.ExchangeRate
}

// NewMemoryExchangeRateRepository creates an empty in-memory rate store.
func NewMemoryExchangeRateRepository() *MemoryExchangeRateRepository {
	return &MemoryExchangeRateRepository{rates: make(map[model.CurrencyPair][]model.ExchangeRate)}
}

// Latest returns the most recently recorded rate for pair.
func (r *MemoryExchangeRateRepository) Latest(_ context.Context, pair model.CurrencyPair) (*model.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rates := r.rates[pair]
	if len(rates) == 0 {
		return nil, nil
	}
	latest := rates[0]
	return &latest, nil
}

// Record stores a rate observation.
func (r *MemoryExchangeRateRepository) Record(_ context.Context, rate model.ExchangeRate) error {
	if rate.RecordedAt.IsZero() {
		rate.RecordedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rates := append(r.rates[rate.Pair], rate)
	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].RecordedAt.After(rates[j].RecordedAt)
	})
	r.rates[rate.Pair] = rates
	return nil
}

// History returns recorded rates for pair, newest first.
func (r *MemoryExchangeRateRepository) History(_ context.Context, pair model.CurrencyPair, limit int) ([]model.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rates := r.rates[pair]
	if limit > 0 && len(rates) > limit {
		rates = rates[:limit]
	}
	return append([]model.ExchangeRate{}, rates...), nil
}

// MemoryQuoteRepository keeps the most recent quotes in process memory.
type MemoryQuoteRepository struct {
	mu       sync.RWMutex
	records  []model.QuoteRecord
	capacity int
}

// NewMemoryQuoteRepository keeps at most capacity records.
func NewMemoryQuoteRepository(capacity int) *MemoryQuoteRepository {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemoryQuoteRepository{capacity: capacity}
}

// Create stores a quote record, evicting the oldest beyond capacity.
func (r *MemoryQuoteRepository) Create(_ context.Context, record *model.QuoteRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	if over := len(r.records) - r.capacity; over > 0 {
		r.records = append([]model.QuoteRecord(nil), r.records[over:]...)
	}
	return nil
}

// List returns the most recent quotes, newest first.
func (r *MemoryQuoteRepository) List(_ context.Context, limit int) ([]model.QuoteRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]model.QuoteRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		if limit > 0 && len(result) == limit {
			break
		}
		result = append(result, r.records[i])
	}
	return result, nil
}
