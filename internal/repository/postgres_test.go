//go:build !integration

package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legacyRows() ([]weightRecord, []densityRecord) {
	weights := []weightRecord{{
		MinWeight: "0", MaxWeight: "50",
		CoefficientBag: "1", BagPackingCost: "3", BagUnloadingCost: "2",
		CoefficientCorner: "2", CornerPackingCost: "5", CornerUnloadingCost: "2",
		CoefficientFrame: "6", FramePackingCost: "10", FrameUnloadingCost: "4",
	}}
	densities := []densityRecord{{
		Category: "Обычные товары", MinDensity: "100", MaxDensity: "250",
		FastDeliveryCost: "3.5", RegularDeliveryCost: "2.6",
	}}
	return weights, densities
}

func TestPostgres_Snapshot(t *testing.T) {
	loadedAt := time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC)
	p := &Postgres{schema: "delivery_test", now: func() time.Time { return loadedAt }}
	weights, densities := legacyRows()

	snapshot, err := p.snapshot(weights, densities)
	require.NoError(t, err)

	assert.Equal(t, loadedAt, snapshot.LoadedAt)
	assert.Regexp(t, `^pg-[0-9a-f]+$`, snapshot.Version)
	assert.Equal(t, "6", snapshot.WeightRows[0].Frame.AdditionalWeight.String())
	assert.Equal(t, "2.6", snapshot.DensityRows[0].RegularDeliveryCostPerKg.String())

	again, err := p.snapshot(weights, densities)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Version, again.Version)

	densities[0].FastDeliveryCost = "3.6"
	changed, err := p.snapshot(weights, densities)
	require.NoError(t, err)
	assert.NotEqual(t, snapshot.Version, changed.Version)
}

func TestPostgres_SnapshotCorrupt(t *testing.T) {
	p := &Postgres{now: time.Now}
	weights, densities := legacyRows()
	weights[0].BagPackingCost = "n/a"

	_, err := p.snapshot(weights, densities)

	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestPostgres_Table(t *testing.T) {
	p := &Postgres{schema: "delivery_test"}
	assert.Equal(t, `"delivery_test"."weight"`, p.table("weight"))
}
