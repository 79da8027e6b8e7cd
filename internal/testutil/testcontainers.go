//go:build integration

package testutil

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"
)

// MongoDBContainer wraps a MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB creates and starts a MongoDB testcontainer.
// Prefer RunWithSharedMongoDB from TestMain to reuse one container per package.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	mongoContainer, err := mongodb.Run(ctx, "mongo:7.0")
	if err != nil {
		return nil, fmt.Errorf("failed to start MongoDB container: %w", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		_ = mongoContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &MongoDBContainer{
		Container: mongoContainer,
		URI:       uri,
	}, nil
}

// Cleanup terminates the MongoDB container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	return terminate(ctx, m.Container)
}

// PostgresContainer wraps a Postgres testcontainer holding the legacy
// delivery_test schema.
type PostgresContainer struct {
	Container testcontainers.Container
	URL       string
}

// LegacySchema creates the legacy rate tables.
const LegacySchema = `
CREATE SCHEMA IF NOT EXISTS delivery_test;
CREATE TABLE IF NOT EXISTS delivery_test.weight (
	id SERIAL PRIMARY KEY,
	min_weight NUMERIC NOT NULL,
	max_weight NUMERIC NOT NULL,
	coefficient_bag NUMERIC NOT NULL,
	bag NUMERIC,
	bag_packing_cost NUMERIC NOT NULL,
	bag_unloading_cost NUMERIC NOT NULL,
	coefficient_corner NUMERIC NOT NULL,
	cardboard_corners NUMERIC,
	corner_packing_cost NUMERIC NOT NULL,
	corner_unloading_cost NUMERIC NOT NULL,
	coefficient_frame NUMERIC NOT NULL,
	wooden_frame NUMERIC,
	frame_packing_cost NUMERIC NOT NULL,
	frame_unloading_cost NUMERIC NOT NULL
);
CREATE TABLE IF NOT EXISTS delivery_test.density (
	id SERIAL PRIMARY KEY,
	category TEXT NOT NULL,
	min_density NUMERIC NOT NULL,
	max_density NUMERIC NOT NULL,
	fast_delivery_cost NUMERIC NOT NULL,
	regular_delivery_cost NUMERIC NOT NULL
);
CREATE TABLE IF NOT EXISTS delivery_test.exchange_rates (
	id SERIAL PRIMARY KEY,
	currency_pair TEXT NOT NULL,
	rate NUMERIC NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL,
	source TEXT,
	notes TEXT
);
`

// SetupPostgres starts a Postgres container.
func SetupPostgres(ctx context.Context) (*PostgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "cargo",
			"POSTGRES_PASSWORD": "cargo",
			"POSTGRES_DB":       "delivery",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	return &PostgresContainer{
		Container: container,
		URL:       fmt.Sprintf("postgres://cargo:cargo@%s:%s/delivery?sslmode=disable", host, port.Port()),
	}, nil
}

// Cleanup terminates the Postgres container.
func (p *PostgresContainer) Cleanup(ctx context.Context) error {
	return terminate(ctx, p.Container)
}

func terminate(ctx context.Context, c testcontainers.Container) error {
	if c == nil {
		return nil
	}
	if err := c.Terminate(ctx); err != nil {
		return fmt.Errorf("failed to terminate container: %w", err)
	}
	return nil
}
