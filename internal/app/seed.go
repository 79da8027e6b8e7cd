package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/service"
	"github.com/rs/zerolog/log"
)

// SeedOperator is recorded as the importer of seeded tariff sets.
const SeedOperator = "seed"

// SeedTariffs imports the tariff set in path when the store has no active set.
// The file has the PUT /api/tariffs request body layout.
func SeedTariffs(ctx context.Context, tariffs service.TariffService, path string) error {
	if path == "" {
		return nil
	}

	_, err := tariffs.Snapshot(ctx)
	if err == nil {
		log.Debug().Str("file", path).Msg("Tariff tables already loaded - skipping seed")
		return nil
	}
	if !errors.Is(err, service.ErrTariffsNotLoaded) {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tariff seed: %w", err)
	}
	var req dto.ImportTariffsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse tariff seed %s: %w", path, err)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("tariff seed %s: %w", path, err)
	}

	weights, densities := req.Tables()
	snapshot, err := tariffs.Import(ctx, weights, densities, SeedOperator)
	if err != nil {
		return fmt.Errorf("import tariff seed %s: %w", path, err)
	}

	log.Info().Str("file", path).Str("version", snapshot.Version).Msg("Tariff tables seeded")
	return nil
}
