// Package repository provides the rate table gateway: tariff tables,
// exchange rates, quote history and audit logs in MongoDB, the legacy
// Postgres tables, or memory.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	tariffSetsCollection    = "tariff_sets"
	exchangeRatesCollection = "exchange_rates"
	quotesCollection        = "quotes"
	logsCollection          = "logs"
	logsTTLIndexName        = "timestamp_ttl"
)

// MongoConfig tunes the driver connection pool.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	// EnableCompression negotiates zstd, snappy or zlib with the server.
	EnableCompression bool
}

// DefaultMongoConfig returns the pool settings used in production.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            5,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

func (cfg MongoConfig) clientOptions(uri string) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if cfg.EnableCompression {
		opts.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}
	return opts
}

// collectionIndexes lists the indexes ensured at startup. The logs TTL
// index is managed separately by SetLogsTTL.
var collectionIndexes = map[string][]mongo.IndexModel{
	// one document per version; a concurrent import with the same version fails
	tariffSetsCollection: {
		{Keys: bson.D{{Key: "version", Value: -1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "version", Value: -1}}},
	},
	exchangeRatesCollection: {
		{Keys: bson.D{{Key: "currency_pair", Value: 1}, {Key: "recorded_at", Value: -1}}},
	},
	quotesCollection: {
		{Keys: bson.D{{Key: "quote_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	},
	logsCollection: {
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
		{Keys: bson.D{{Key: "operator", Value: 1}, {Key: "action_type", Value: 1}}},
	},
}

// MongoDB holds the client and the service's collections.
type MongoDB struct {
	Client        *mongo.Client
	Database      *mongo.Database
	TariffSets    *mongo.Collection
	ExchangeRates *mongo.Collection
	Quotes        *mongo.Collection
	Logs          *mongo.Collection
}

// NewMongoDB connects with DefaultMongoConfig.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings and ensures indexes. The client is
// disconnected again if any step fails.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, cfg.clientOptions(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:        client,
		Database:      db,
		TariffSets:    db.Collection(tariffSetsCollection),
		ExchangeRates: db.Collection(exchangeRatesCollection),
		Quotes:        db.Collection(quotesCollection),
		Logs:          db.Collection(logsCollection),
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	for name, models := range collectionIndexes {
		if _, err := m.Database.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

// SetLogsTTL replaces the TTL index that expires log documents.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("logs ttl must be positive")
	}

	// the index may not exist yet
	_, _ = m.Logs.Indexes().DropOne(ctx, logsTTLIndexName)

	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().
			SetName(logsTTLIndexName).
			SetExpireAfterSeconds(int32(ttl.Seconds())),
	})
	if isIndexConflict(err) {
		return nil
	}
	return err
}

// isIndexConflict reports IndexOptionsConflict (85) and IndexKeySpecsConflict (86).
func isIndexConflict(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 85 || cmdErr.Code == 86
	}
	return false
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the primary within two seconds.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
