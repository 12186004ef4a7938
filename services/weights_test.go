package services

import (
	"testing"

	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"github.com/stretchr/testify/assert"
)

func TestWeightTable_Defaults(t *testing.T) {
	table := NewWeightTable(nil)

	assert.Equal(t, 1.50, table.For(models.TagKindLocation))
	assert.Equal(t, 1.30, table.For(models.TagKindPropertyType))
	assert.Equal(t, 0.10, table.For(models.TagKindInternal))
	assert.Equal(t, DefaultKindWeight, table.For(models.TagKind("mystery")))
}

func TestWeightTable_Overrides(t *testing.T) {
	table := NewWeightTable(map[string]float64{
		"amenity":   2.0,
		"new-kind":  0.3,
		"location":  0,
		"operation": -1,
	})

	assert.Equal(t, 2.0, table.For(models.TagKindAmenity))
	assert.Equal(t, 0.3, table.For(models.TagKind("new-kind")))
	assert.Equal(t, 1.50, table.For(models.TagKindLocation), "non-positive overrides are ignored")
	assert.Equal(t, 1.20, table.For(models.TagKindOperation))

	// overrides never leak into the shared defaults
	assert.Equal(t, 0.90, DefaultWeights[models.TagKindAmenity])
}

func TestWeightTable_Effective(t *testing.T) {
	table := NewWeightTable(nil)
	explicit := 3.5
	zero := 0.0

	assert.Equal(t, 3.5, table.Effective(&explicit, models.TagKindInternal))
	assert.Equal(t, 0.10, table.Effective(nil, models.TagKindInternal))
	assert.Equal(t, 0.10, table.Effective(&zero, models.TagKindInternal))
}

func TestWeightTable_SnapshotIsACopy(t *testing.T) {
	table := NewWeightTable(nil)
	snap := table.Snapshot()
	snap["location"] = 99

	assert.Equal(t, 1.50, table.For(models.TagKindLocation))
	assert.Len(t, snap, len(DefaultWeights))
}
