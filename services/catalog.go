package services

import (
	"context"

	"github.com/renecastillotv/clic-api-neon-sub000/errs"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
)

// Catalog lists the tenant's active tags, optionally of one kind.
func (e *Engine) Catalog(ctx context.Context, tenantID string, kind models.TagKind) ([]models.Tag, error) {
	tags, err := e.tags.FindActive(ctx, tenantID, kind)
	if err != nil {
		return nil, errs.NewStoreAccessError("list", "tags", err)
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}
