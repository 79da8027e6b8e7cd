package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/engine"
	"github.com/guttosm/cargo-quote/internal/metrics"
	"github.com/guttosm/cargo-quote/internal/repository"
	"github.com/guttosm/cargo-quote/internal/service/cache"
)

var (
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrTariffsNotLoaded is returned when no tariff tables were imported yet.
	ErrTariffsNotLoaded = errors.New("tariff tables are not loaded")
)

// snapshotCache holds the active tariff snapshot for a short TTL so quotes
// do not hit the store on every request.
type snapshotCache struct {
	snapshot  atomic.Pointer[model.TariffSnapshot]
	expiresAt atomic.Value // holds time.Time
	mu        sync.Mutex
	ttl       time.Duration
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	c := &snapshotCache{ttl: ttl}
	c.expiresAt.Store(time.Time{})
	return c
}

// get returns the cached snapshot, or nil if the cache is expired or empty.
func (c *snapshotCache) get() *model.TariffSnapshot {
	if expiresAt, ok := c.expiresAt.Load().(time.Time); ok && time.Now().Before(expiresAt) {
		return c.snapshot.Load()
	}
	return nil
}

func (c *snapshotCache) set(snapshot *model.TariffSnapshot) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot.Store(snapshot)
	c.expiresAt.Store(time.Now().Add(c.ttl))
}

func (c *snapshotCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expiresAt.Store(time.Time{})
	c.snapshot.Store(nil)
}

// TariffService provides the active tariff tables and their import.
type TariffService interface {
	// Snapshot returns the active tables as one consistent snapshot.
	Snapshot(ctx context.Context) (*model.TariffSnapshot, error)
	// Import validates and stores new tables as the active version.
	Import(ctx context.Context, weights []model.WeightTariffRow, densities []model.DensityTariffRow, importedBy string) (*model.TariffSnapshot, error)
	// History lists imported versions, newest first.
	History(ctx context.Context, limit int) ([]model.TariffSetSummary, error)
	// Categories lists the product categories of the active density table.
	Categories(ctx context.Context) ([]string, error)
}

// TariffServiceOption configures a TariffServiceImpl.
type TariffServiceOption func(*TariffServiceImpl)

// WithSnapshotTTL sets how long a loaded snapshot is reused.
func WithSnapshotTTL(ttl time.Duration) TariffServiceOption {
	return func(s *TariffServiceImpl) {
		s.cache = newSnapshotCache(ttl)
	}
}

// WithQuoteCache clears c whenever new tables are imported.
func WithQuoteCache(c cache.Cache) TariffServiceOption {
	return func(s *TariffServiceImpl) {
		s.quoteCache = c
	}
}

// TariffServiceImpl implements TariffService.
type TariffServiceImpl struct {
	repo       repository.TariffRepositoryInterface
	cache      *snapshotCache
	quoteCache cache.Cache
	lookup     time.Duration
}

// NewTariffService creates a tariff service over repo.
func NewTariffService(repo repository.TariffRepositoryInterface, opts ...TariffServiceOption) *TariffServiceImpl {
	s := &TariffServiceImpl{
		repo:   repo,
		cache:  newSnapshotCache(time.Minute),
		lookup: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the active tables. The store is read once per TTL.
func (s *TariffServiceImpl) Snapshot(ctx context.Context) (*model.TariffSnapshot, error) {
	if snapshot := s.cache.get(); snapshot != nil {
		return snapshot, nil
	}
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, s.lookup)
	defer cancel()

	snapshot, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tariff tables: %w", err)
	}
	if snapshot == nil {
		return nil, ErrTariffsNotLoaded
	}
	s.cache.set(snapshot)
	return snapshot, nil
}

// Import validates both tables and stores them as the new active version.
// Cached snapshots and quotes are dropped on success.
func (s *TariffServiceImpl) Import(ctx context.Context, weights []model.WeightTariffRow, densities []model.DensityTariffRow, importedBy string) (*model.TariffSnapshot, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := engine.ValidateWeightTable(weights); err != nil {
		metrics.RecordTariffImport("rejected")
		return nil, err
	}
	if err := engine.ValidateDensityTable(densities); err != nil {
		metrics.RecordTariffImport("rejected")
		return nil, err
	}

	snapshot, err := s.repo.Create(ctx, weights, densities, importedBy)
	if err != nil {
		metrics.RecordTariffImport("error")
		return nil, fmt.Errorf("store tariff tables: %w", err)
	}
	metrics.RecordTariffImport("success")

	s.cache.invalidate()
	if s.quoteCache != nil {
		s.quoteCache.Clear(ctx)
	}

	log.Info().
		Str("version", snapshot.Version).
		Str("imported_by", importedBy).
		Int("weight_rows", len(weights)).
		Int("density_rows", len(densities)).
		Msg("tariff tables imported")
	return snapshot, nil
}

// History lists imported versions, newest first.
func (s *TariffServiceImpl) History(ctx context.Context, limit int) ([]model.TariffSetSummary, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, limit)
}

// Categories lists the product categories of the active density table.
func (s *TariffServiceImpl) Categories(ctx context.Context) ([]string, error) {
	snapshot, err := s.Snapshot(ctx)
	if errors.Is(err, ErrTariffsNotLoaded) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return snapshot.Categories(), nil
}

// Invalidate drops the cached snapshot.
func (s *TariffServiceImpl) Invalidate() {
	s.cache.invalidate()
}
