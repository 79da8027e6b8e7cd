package repository

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresConfig holds connection settings for the legacy rate tables.
type PostgresConfig struct {
	URL      string
	Schema   string
	MaxConns int32
}

// Postgres reads the weight and density tables and reads and writes the
// exchange_rates table of the legacy delivery database. Tariff tables are
// maintained outside this service, so Create returns ErrReadOnly.
type Postgres struct {
	pool   *pgxpool.Pool
	schema string
	now    func() time.Time
}

// NewPostgres opens a connection pool and verifies it with a ping.
func NewPostgres(ctx context.Context, cfg PostgresConfig) (*Postgres, error) {
	if cfg.URL == "" {
		return nil, errors.New("postgres url is not set")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	if poolCfg.MaxConns <= 0 {
		poolCfg.MaxConns = 5
	}
	poolCfg.MinConns = 0
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "cargo-quote"
	poolCfg.ConnConfig.RuntimeParams["timezone"] = "UTC"
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = "5000"

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	schema := cfg.Schema
	if schema == "" {
		schema = "public"
	}
	return &Postgres{pool: pool, schema: schema, now: time.Now}, nil
}

func (p *Postgres) table(name string) string {
	return pgx.Identifier{p.schema, name}.Sanitize()
}

type weightRecord struct {
	MinWeight           string `db:"min_weight"`
	MaxWeight           string `db:"max_weight"`
	CoefficientBag      string `db:"coefficient_bag"`
	BagPackingCost      string `db:"bag_packing_cost"`
	BagUnloadingCost    string `db:"bag_unloading_cost"`
	CoefficientCorner   string `db:"coefficient_corner"`
	CornerPackingCost   string `db:"corner_packing_cost"`
	CornerUnloadingCost string `db:"corner_unloading_cost"`
	CoefficientFrame    string `db:"coefficient_frame"`
	FramePackingCost    string `db:"frame_packing_cost"`
	FrameUnloadingCost  string `db:"frame_unloading_cost"`
}

type densityRecord struct {
	Category            string `db:"category"`
	MinDensity          string `db:"min_density"`
	MaxDensity          string `db:"max_density"`
	FastDeliveryCost    string `db:"fast_delivery_cost"`
	RegularDeliveryCost string `db:"regular_delivery_cost"`
}

type exchangeRateRecord struct {
	CurrencyPair string    `db:"currency_pair"`
	Rate         string    `db:"rate"`
	RecordedAt   time.Time `db:"recorded_at"`
	Source       string    `db:"source"`
	Notes        string    `db:"notes"`
}

// GetActive reads both tariff tables inside one repeatable-read transaction.
// The version is a content hash, so it changes whenever the tables do.
func (p *Postgres) GetActive(ctx context.Context) (*model.TariffSnapshot, error) {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	rows, err := tx.Query(ctx, `
		SELECT min_weight::text AS min_weight, max_weight::text AS max_weight,
		       coefficient_bag::text AS coefficient_bag,
		       bag_packing_cost::text AS bag_packing_cost,
		       bag_unloading_cost::text AS bag_unloading_cost,
		       coefficient_corner::text AS coefficient_corner,
		       corner_packing_cost::text AS corner_packing_cost,
		       corner_unloading_cost::text AS corner_unloading_cost,
		       coefficient_frame::text AS coefficient_frame,
		       frame_packing_cost::text AS frame_packing_cost,
		       frame_unloading_cost::text AS frame_unloading_cost
		FROM `+p.table("weight")+`
		ORDER BY min_weight`)
	if err != nil {
		return nil, err
	}
	weights, err := pgx.CollectRows(rows, pgx.RowToStructByName[weightRecord])
	if err != nil {
		return nil, err
	}

	rows, err = tx.Query(ctx, `
		SELECT category, min_density::text AS min_density, max_density::text AS max_density,
		       fast_delivery_cost::text AS fast_delivery_cost,
		       regular_delivery_cost::text AS regular_delivery_cost
		FROM `+p.table("density")+`
		ORDER BY category, min_density`)
	if err != nil {
		return nil, err
	}
	densities, err := pgx.CollectRows(rows, pgx.RowToStructByName[densityRecord])
	if err != nil {
		return nil, err
	}

	if len(weights) == 0 && len(densities) == 0 {
		return nil, nil
	}
	return p.snapshot(weights, densities)
}

func (p *Postgres) snapshot(weights []weightRecord, densities []densityRecord) (*model.TariffSnapshot, error) {
	hash := fnv.New64a()
	var d decimalDecoder

	snapshot := &model.TariffSnapshot{
		LoadedAt:    p.now().UTC(),
		WeightRows:  make([]model.WeightTariffRow, 0, len(weights)),
		DensityRows: make([]model.DensityTariffRow, 0, len(densities)),
	}
	for _, w := range weights {
		_, _ = fmt.Fprintln(hash, w)
		snapshot.WeightRows = append(snapshot.WeightRows, model.WeightTariffRow{
			MinWeight: d.decode("min_weight", w.MinWeight),
			MaxWeight: d.decode("max_weight", w.MaxWeight),
			Bag: model.PackagingTariff{
				AdditionalWeight: d.decode("coefficient_bag", w.CoefficientBag),
				PackagingCost:    d.decode("bag_packing_cost", w.BagPackingCost),
				UnloadingCost:    d.decode("bag_unloading_cost", w.BagUnloadingCost),
			},
			Corners: model.PackagingTariff{
				AdditionalWeight: d.decode("coefficient_corner", w.CoefficientCorner),
				PackagingCost:    d.decode("corner_packing_cost", w.CornerPackingCost),
				UnloadingCost:    d.decode("corner_unloading_cost", w.CornerUnloadingCost),
			},
			Frame: model.PackagingTariff{
				AdditionalWeight: d.decode("coefficient_frame", w.CoefficientFrame),
				PackagingCost:    d.decode("frame_packing_cost", w.FramePackingCost),
				UnloadingCost:    d.decode("frame_unloading_cost", w.FrameUnloadingCost),
			},
		})
	}
	for _, r := range densities {
		_, _ = fmt.Fprintln(hash, r)
		snapshot.DensityRows = append(snapshot.DensityRows, model.DensityTariffRow{
			Category:                 r.Category,
			MinDensity:               d.decode("min_density", r.MinDensity),
			MaxDensity:               d.decode("max_density", r.MaxDensity),
			FastDeliveryCostPerKg:    d.decode("fast_delivery_cost", r.FastDeliveryCost),
			RegularDeliveryCostPerKg: d.decode("regular_delivery_cost", r.RegularDeliveryCost),
		})
	}
	if d.err != nil {
		return nil, d.err
	}

	snapshot.Version = "pg-" + strconv.FormatUint(hash.Sum64(), 16)
	return snapshot, nil
}

// Create is not supported: the legacy tables are edited by hand.
func (p *Postgres) Create(context.Context, []model.WeightTariffRow, []model.DensityTariffRow, string) (*model.TariffSnapshot, error) {
	return nil, ErrReadOnly
}

// List returns the single live version of the legacy tables.
func (p *Postgres) List(ctx context.Context, _ int) ([]model.TariffSetSummary, error) {
	snapshot, err := p.GetActive(ctx)
	if err != nil || snapshot == nil {
		return []model.TariffSetSummary{}, err
	}
	return []model.TariffSetSummary{{
		Version:     snapshot.Version,
		Active:      true,
		CreatedAt:   snapshot.LoadedAt,
		WeightRows:  len(snapshot.WeightRows),
		DensityRows: len(snapshot.DensityRows),
	}}, nil
}

// Latest returns the most recent rate for pair.
func (p *Postgres) Latest(ctx context.Context, pair model.CurrencyPair) (*model.ExchangeRate, error) {
	rates, err := p.History(ctx, pair, 1)
	if err != nil || len(rates) == 0 {
		return nil, err
	}
	return &rates[0], nil
}

// Record inserts a rate observation.
func (p *Postgres) Record(ctx context.Context, rate model.ExchangeRate) error {
	recordedAt := rate.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = p.now()
	}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO `+p.table("exchange_rates")+` (currency_pair, rate, recorded_at, source, notes)
		VALUES ($1, $2::numeric, $3, $4, NULLIF($5, ''))`,
		rate.Pair.String(), rate.Rate.String(), recordedAt.UTC(), rate.Source, rate.Notes)
	return err
}

// History returns recorded rates for pair, newest first.
func (p *Postgres) History(ctx context.Context, pair model.CurrencyPair, limit int) ([]model.ExchangeRate, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := p.pool.Query(ctx, `
		SELECT currency_pair, rate::text AS rate, recorded_at,
		       COALESCE(source, '') AS source, COALESCE(notes, '') AS notes
		FROM `+p.table("exchange_rates")+`
		WHERE currency_pair = $1
		ORDER BY recorded_at DESC
		LIMIT $2`, pair.String(), limit)
	if err != nil {
		return nil, err
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[exchangeRateRecord])
	if err != nil {
		return nil, err
	}

	rates := make([]model.ExchangeRate, 0, len(records))
	for _, r := range records {
		value, err := decimal.NewFromString(r.Rate)
		if err != nil {
			return nil, fmt.Errorf("%w: rate=%q", ErrCorruptRecord, r.Rate)
		}
		rates = append(rates, model.ExchangeRate{
			Pair:       pair,
			Rate:       value,
			RecordedAt: r.RecordedAt,
			Source:     r.Source,
			Notes:      r.Notes,
		})
	}
	return rates, nil
}

// HealthCheck pings the database.
func (p *Postgres) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Close closes the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}
