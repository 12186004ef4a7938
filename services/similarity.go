package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
)

// SimilarTo ranks entities of the same kind that share tags with the given entity, which
// never appears in its own results. An untagged entity yields an empty slice; callers
// fall back to another strategy (e.g. newest listings) on empty.
func (e *Engine) SimilarTo(ctx context.Context, kind models.EntityKind, entityID uuid.UUID, tenantID string, limit int) ([]RankedEntity, error) {
	weighted, err := e.TagsForEntity(ctx, kind, entityID, tenantID)
	if err != nil {
		return nil, err
	}
	if len(weighted) == 0 {
		return []RankedEntity{}, nil
	}

	tags := make([]models.Tag, len(weighted))
	for i, w := range weighted {
		tags[i] = w.Tag
	}

	return e.RankByTags(ctx, tags, tenantID, RankOptions{
		Kinds:           []models.EntityKind{kind},
		Limit:           limit,
		ExcludeEntityID: &entityID,
	})
}
