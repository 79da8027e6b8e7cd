//go:build !integration

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/guttosm/cargo-quote/internal/repository"
	"github.com/guttosm/cargo-quote/internal/service"
	"github.com/guttosm/cargo-quote/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedTariffs(t *testing.T) {
	ctx := context.Background()

	t.Run("imports into an empty store", func(t *testing.T) {
		tariffs := service.NewTariffService(repository.NewMemoryTariffRepository())

		require.NoError(t, SeedTariffs(ctx, tariffs, writeSeedFile(t)))

		snapshot, err := tariffs.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1", snapshot.Version)
		assert.Len(t, snapshot.WeightRows, len(testutil.SampleWeightRows()))

		history, err := tariffs.History(ctx, 10)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, SeedOperator, history[0].CreatedBy)
	})

	t.Run("keeps an existing tariff set", func(t *testing.T) {
		tariffs := service.NewTariffService(repository.NewMemoryTariffRepository())
		_, err := tariffs.Import(ctx, testutil.SampleWeightRows(), testutil.SampleDensityRows(), "anna")
		require.NoError(t, err)

		require.NoError(t, SeedTariffs(ctx, tariffs, writeSeedFile(t)))

		history, err := tariffs.History(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("no file configured", func(t *testing.T) {
		tariffs := service.NewTariffService(repository.NewMemoryTariffRepository())
		assert.NoError(t, SeedTariffs(ctx, tariffs, ""))

		_, err := tariffs.Snapshot(ctx)
		assert.ErrorIs(t, err, service.ErrTariffsNotLoaded)
	})

	t.Run("rejects bad files", func(t *testing.T) {
		dir := t.TempDir()
		malformed := filepath.Join(dir, "malformed.json")
		require.NoError(t, os.WriteFile(malformed, []byte(`{"weight_rows": [`), 0o600))
		empty := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(empty, []byte(`{"weight_rows": [], "density_rows": []}`), 0o600))

		for _, path := range []string{filepath.Join(dir, "missing.json"), malformed, empty} {
			tariffs := service.NewTariffService(repository.NewMemoryTariffRepository())
			assert.Error(t, SeedTariffs(ctx, tariffs, path), path)
		}
	})
}
