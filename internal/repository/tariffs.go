package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TariffSetDocument is one imported version of both tariff tables.
// Decimals are stored as strings so no precision is lost.
type TariffSetDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Version     int                  `bson:"version"`
	Active      bool                 `bson:"active"`
	WeightRows  []WeightRowDocument  `bson:"weight_rows"`
	DensityRows []DensityRowDocument `bson:"density_rows"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
	CreatedBy   string               `bson:"created_by,omitempty"`
}

// PackagingDocument holds one packaging method's charges.
type PackagingDocument struct {
	AdditionalWeight string `bson:"additional_weight"`
	PackagingCost    string `bson:"packaging_cost"`
	UnloadingCost    string `bson:"unloading_cost"`
}

// WeightRowDocument is a stored weight tier.
type WeightRowDocument struct {
	MinWeight string            `bson:"min_weight"`
	MaxWeight string            `bson:"max_weight"`
	Bag       PackagingDocument `bson:"bag"`
	Corners   PackagingDocument `bson:"corners"`
	Frame     PackagingDocument `bson:"frame"`
}

// DensityRowDocument is a stored density tier.
type DensityRowDocument struct {
	Category                 string `bson:"category"`
	MinDensity               string `bson:"min_density"`
	MaxDensity               string `bson:"max_density"`
	FastDeliveryCostPerKg    string `bson:"fast_delivery_cost_per_kg"`
	RegularDeliveryCostPerKg string `bson:"regular_delivery_cost_per_kg"`
}

// TariffRepository stores tariff sets in MongoDB.
type TariffRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewTariffRepository creates a new tariff repository.
func NewTariffRepository(db *MongoDB) *TariffRepository {
	return &TariffRepository{
		collection: db.TariffSets,
		now:        time.Now,
	}
}

// GetActive returns the newest active tariff set.
func (r *TariffRepository) GetActive(ctx context.Context) (*model.TariffSnapshot, error) {
	var doc TariffSetDocument
	err := r.collection.FindOne(ctx,
		bson.M{"active": true},
		options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toSnapshot()
}

// Create inserts the next version as active, then retires older active
// versions. Readers sort by version, so they see either the old or the new
// set in full.
func (r *TariffRepository) Create(ctx context.Context, weights []model.WeightTariffRow, densities []model.DensityTariffRow, createdBy string) (*model.TariffSnapshot, error) {
	version, err := r.nextVersion(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	doc := TariffSetDocument{
		ID:          primitive.NewObjectID(),
		Version:     version,
		Active:      true,
		WeightRows:  weightDocuments(weights),
		DensityRows: densityDocuments(densities),
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   createdBy,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, err
	}

	_, err = r.collection.UpdateMany(ctx,
		bson.M{"active": true, "version": bson.M{"$lt": version}},
		bson.M{"$set": bson.M{"active": false, "updated_at": now}},
	)
	if err != nil {
		return nil, err
	}

	return doc.toSnapshot()
}

func (r *TariffRepository) nextVersion(ctx context.Context) (int, error) {
	var latest struct {
		Version int `bson:"version"`
	}
	err := r.collection.FindOne(ctx, bson.M{},
		options.FindOne().
			SetSort(bson.D{{Key: "version", Value: -1}}).
			SetProjection(bson.M{"version": 1}),
	).Decode(&latest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return latest.Version + 1, nil
}

// List returns tariff set summaries, newest first.
func (r *TariffRepository) List(ctx context.Context, limit int) ([]model.TariffSetSummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []TariffSetDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	summaries := make([]model.TariffSetSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, doc.summary())
	}
	return summaries, nil
}

func (d TariffSetDocument) summary() model.TariffSetSummary {
	return model.TariffSetSummary{
		Version:     strconv.Itoa(d.Version),
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
		WeightRows:  len(d.WeightRows),
		DensityRows: len(d.DensityRows),
	}
}

func (d TariffSetDocument) toSnapshot() (*model.TariffSnapshot, error) {
	snapshot := &model.TariffSnapshot{
		Version:     strconv.Itoa(d.Version),
		LoadedAt:    d.CreatedAt,
		WeightRows:  make([]model.WeightTariffRow, 0, len(d.WeightRows)),
		DensityRows: make([]model.DensityTariffRow, 0, len(d.DensityRows)),
	}

	for i, w := range d.WeightRows {
		row, err := w.toModel()
		if err != nil {
			return nil, fmt.Errorf("tariff set %d weight row %d: %w", d.Version, i, err)
		}
		snapshot.WeightRows = append(snapshot.WeightRows, row)
	}
	for i, dd := range d.DensityRows {
		row, err := dd.toModel()
		if err != nil {
			return nil, fmt.Errorf("tariff set %d density row %d: %w", d.Version, i, err)
		}
		snapshot.DensityRows = append(snapshot.DensityRows, row)
	}
	return snapshot, nil
}

func weightDocuments(rows []model.WeightTariffRow) []WeightRowDocument {
	docs := make([]WeightRowDocument, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, WeightRowDocument{
			MinWeight: r.MinWeight.String(),
			MaxWeight: r.MaxWeight.String(),
			Bag:       packagingDocument(r.Bag),
			Corners:   packagingDocument(r.Corners),
			Frame:     packagingDocument(r.Frame),
		})
	}
	return docs
}

func densityDocuments(rows []model.DensityTariffRow) []DensityRowDocument {
	docs := make([]DensityRowDocument, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, DensityRowDocument{
			Category:                 r.Category,
			MinDensity:               r.MinDensity.String(),
			MaxDensity:               r.MaxDensity.String(),
			FastDeliveryCostPerKg:    r.FastDeliveryCostPerKg.String(),
			RegularDeliveryCostPerKg: r.RegularDeliveryCostPerKg.String(),
		})
	}
	return docs
}

func packagingDocument(p model.PackagingTariff) PackagingDocument {
	return PackagingDocument{
		AdditionalWeight: p.AdditionalWeight.String(),
		PackagingCost:    p.PackagingCost.String(),
		UnloadingCost:    p.UnloadingCost.String(),
	}
}

func (w WeightRowDocument) toModel() (model.WeightTariffRow, error) {
	var (
		row model.WeightTariffRow
		d   decimalDecoder
	)
	row.MinWeight = d.decode("min_weight", w.MinWeight)
	row.MaxWeight = d.decode("max_weight", w.MaxWeight)
	row.Bag = d.packaging("bag", w.Bag)
	row.Corners = d.packaging("corners", w.Corners)
	row.Frame = d.packaging("frame", w.Frame)
	return row, d.err
}

func (r DensityRowDocument) toModel() (model.DensityTariffRow, error) {
	var d decimalDecoder
	row := model.DensityTariffRow{
		Category:                 r.Category,
		MinDensity:               d.decode("min_density", r.MinDensity),
		MaxDensity:               d.decode("max_density", r.MaxDensity),
		FastDeliveryCostPerKg:    d.decode("fast_delivery_cost_per_kg", r.FastDeliveryCostPerKg),
		RegularDeliveryCostPerKg: d.decode("regular_delivery_cost_per_kg", r.RegularDeliveryCostPerKg),
	}
	return row, d.err
}

// decimalDecoder parses stored decimal strings and keeps the first error.
type decimalDecoder struct {
	err error
}

func (d *decimalDecoder) decode(field, s string) decimal.Decimal {
	if d.err != nil {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		d.err = fmt.Errorf("%w: %s=%q", ErrCorruptRecord, field, s)
		return decimal.Zero
	}
	return v
}

func (d *decimalDecoder) packaging(method string, p PackagingDocument) model.PackagingTariff {
	return model.PackagingTariff{
		AdditionalWeight: d.decode(method+".additional_weight", p.AdditionalWeight),
		PackagingCost:    d.decode(method+".packaging_cost", p.PackagingCost),
		UnloadingCost:    d.decode(method+".unloading_cost", p.UnloadingCost),
	}
}
