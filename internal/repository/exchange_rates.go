package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExchangeRateDocument is a stored exchange rate observation.
type ExchangeRateDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CurrencyPair string             `bson:"currency_pair"`
	Rate         string             `bson:"rate"`
	RecordedAt   time.Time          `bson:"recorded_at"`
	Source       string             `bson:"source"`
	Notes        string             `bson:"notes,omitempty"`
}

// ExchangeRateRepository stores exchange rates in MongoDB.
type ExchangeRateRepository struct {
	collection *mongo.Collection
}

// NewExchangeRateRepository creates a new exchange rate repository.
func NewExchangeRateRepository(db *MongoDB) *ExchangeRateRepository {
	return &ExchangeRateRepository{collection: db.ExchangeRates}
}

// Latest returns the most recently recorded rate for pair.
func (r *ExchangeRateRepository) Latest(ctx context.Context, pair model.CurrencyPair) (*model.ExchangeRate, error) {
	var doc ExchangeRateDocument
	err := r.collection.FindOne(ctx,
		bson.M{"currency_pair": pair.String()},
		options.FindOne().SetSort(bson.D{{Key: "recorded_at", Value: -1}}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rate, err := doc.toModel()
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// Record stores a rate observation.
func (r *ExchangeRateRepository) Record(ctx context.Context, rate model.ExchangeRate) error {
	recordedAt := rate.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, ExchangeRateDocument{
		ID:           primitive.NewObjectID(),
		CurrencyPair: rate.Pair.String(),
		Rate:         rate.Rate.String(),
		RecordedAt:   recordedAt.UTC(),
		Source:       rate.Source,
		Notes:        rate.Notes,
	})
	return err
}

// History returns recorded rates for pair, newest first.
func (r *ExchangeRateRepository) History(ctx context.Context, pair model.CurrencyPair, limit int) ([]model.ExchangeRate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"currency_pair": pair.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []ExchangeRateDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	rates := make([]model.ExchangeRate, 0, len(docs))
	for _, doc := range docs {
		rate, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

func (d ExchangeRateDocument) toModel() (model.ExchangeRate, error) {
	pair, err := model.ParseCurrencyPair(d.CurrencyPair)
	if err != nil {
		return model.ExchangeRate{}, errors.Join(ErrCorruptRecord, err)
	}
	var dec decimalDecoder
	rate := model.ExchangeRate{
		Pair:       pair,
		Rate:       dec.decode("rate", d.Rate),
		RecordedAt: d.RecordedAt,
		Source:     d.Source,
		Notes:      d.Notes,
	}
	return rate, dec.err
}
