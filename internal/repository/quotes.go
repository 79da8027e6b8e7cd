package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuoteDocument is a stored quote. The searchable fields are kept at the top
// level; the full record is kept as JSON in Payload.
type QuoteDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	QuoteID       string             `bson:"quote_id"`
	RequestID     string             `bson:"request_id,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	TariffVersion string             `bson:"tariff_version,omitempty"`
	Category      string             `bson:"category"`
	TotalWeight   string             `bson:"total_weight"`
	Cheapest      string             `bson:"cheapest"`
	Payload       string             `bson:"payload"`
}

// QuoteRepository stores quote history in MongoDB.
type QuoteRepository struct {
	collection *mongo.Collection
}

// NewQuoteRepository creates a new quote repository.
func NewQuoteRepository(db *MongoDB) *QuoteRepository {
	return &QuoteRepository{collection: db.Quotes}
}

// Create stores a quote record.
func (r *QuoteRepository) Create(ctx context.Context, record *model.QuoteRecord) error {
	doc, err := newQuoteDocument(record)
	if err != nil {
		return err
	}
	_, err = r.collection.InsertOne(ctx, doc)
	return err
}

// List returns the most recent quotes, newest first.
func (r *QuoteRepository) List(ctx context.Context, limit int) ([]model.QuoteRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
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

	var docs []QuoteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]model.QuoteRecord, 0, len(docs))
	for _, doc := range docs {
		var record model.QuoteRecord
		if err := json.Unmarshal([]byte(doc.Payload), &record); err != nil {
			return nil, fmt.Errorf("%w: quote %s: %v", ErrCorruptRecord, doc.QuoteID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func newQuoteDocument(record *model.QuoteRecord) (QuoteDocument, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return QuoteDocument{}, err
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return QuoteDocument{
		ID:            primitive.NewObjectID(),
		QuoteID:       record.ID,
		RequestID:     record.RequestID,
		CreatedAt:     createdAt.UTC(),
		TariffVersion: record.TariffVersion,
		Category:      record.Result.General.Category,
		TotalWeight:   record.Result.General.TotalWeight.String(),
		Cheapest:      string(record.Result.Cheapest().Method),
		Payload:       string(payload),
	}, nil
}
