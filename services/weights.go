package services

import (
	"maps"

	"github.com/renecastillotv/clic-api-neon-sub000/models"
)

// DefaultKindWeight applies to tag kinds missing from the table.
const DefaultKindWeight = 1.0

// DefaultWeights is the weight class of each tag kind.
var DefaultWeights = map[models.TagKind]float64{
	models.TagKindLocation:     1.50,
	models.TagKindPropertyType: 1.30,
	models.TagKindArea:         1.20,
	models.TagKindOperation:    1.20,
	models.TagKindCountry:      1.00,
	models.TagKindFeature:      1.00,
	models.TagKindAmenity:      0.90,
	models.TagKindFilter:       0.80,
	models.TagKindCuratedList:  0.70,
	models.TagKindService:      0.60,
	models.TagKindContent:      0.50,
	models.TagKindInternal:     0.10,
}

// WeightTable maps tag kinds to their default relevance weight. It is immutable once built.
type WeightTable struct {
	weights map[models.TagKind]float64
}

// NewWeightTable starts from DefaultWeights and applies overrides keyed by kind name.
// Non-positive overrides are ignored.
func NewWeightTable(overrides map[string]float64) WeightTable {
	weights := maps.Clone(DefaultWeights)
	for kind, w := range overrides {
		if w > 0 {
			weights[models.TagKind(kind)] = w
		}
	}
	return WeightTable{weights: weights}
}

// For returns the weight class of kind.
func (t WeightTable) For(kind models.TagKind) float64 {
	if w, ok := t.weights[kind]; ok {
		return w
	}
	return DefaultKindWeight
}

// Effective is the weight an association contributes: its own when set, else the kind's.
func (t WeightTable) Effective(weight *float64, kind models.TagKind) float64 {
	if weight != nil && *weight > 0 {
		return *weight
	}
	return t.For(kind)
}

// Snapshot returns a copy of the table, keyed by kind name.
func (t WeightTable) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(t.weights))
	for kind, w := range t.weights {
		out[string(kind)] = w
	}
	return out
}
