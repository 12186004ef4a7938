package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"gorm.io/gorm"
)

type TagAssociationRepo struct {
	db *gorm.DB
}

func NewTagAssociationRepo(db *gorm.DB) *TagAssociationRepo {
	return &TagAssociationRepo{db}
}

// FindForEntity returns the entity's associations with their tags loaded.
// Associations pointing at inactive tags are left out.
func (r *TagAssociationRepo) FindForEntity(ctx context.Context, tenantID string, kind models.EntityKind, entityID uuid.UUID) ([]models.TagAssociation, error) {
	db := r.db.WithContext(ctx)

	var associations []models.TagAssociation
	err := db.
		InnerJoins("Tag", db.Where(&models.Tag{TenantID: tenantID, Active: true})).
		Where("tag_associations.tenant_id = ? AND tag_associations.entity_kind = ? AND tag_associations.entity_id = ?", tenantID, string(kind), entityID).
		Order("tag_associations.order_hint ASC").
		Find(&associations).Error
	return associations, err
}

// FindMatches returns every association of an entity of one of kinds with one of tagIDs,
// joined with the active tag it points to.
func (r *TagAssociationRepo) FindMatches(ctx context.Context, tenantID string, tagIDs []uuid.UUID, kinds []models.EntityKind) ([]models.AssociationMatch, error) {
	if len(tagIDs) == 0 || len(kinds) == 0 {
		return nil, nil
	}

	var matches []models.AssociationMatch
	err := r.db.WithContext(ctx).
		Table("tag_associations AS ta").
		Select("ta.entity_kind, ta.entity_id, ta.tag_id, t.kind AS tag_kind, ta.weight, ta.order_hint").
		Joins("JOIN tags t ON t.id = ta.tag_id").
		Where("ta.tenant_id = ? AND t.tenant_id = ? AND t.active = ?", tenantID, tenantID, true).
		Where("ta.tag_id IN ?", tagIDs).
		Where("ta.entity_kind IN ?", kindStrings(kinds)).
		Scan(&matches).Error
	return matches, err
}

// Add inserts a new association without touching the tag it points to
func (r *TagAssociationRepo) Add(ctx context.Context, association *models.TagAssociation) error {
	return r.db.WithContext(ctx).Omit("Tag").Create(association).Error
}

// DeleteForEntity removes every association of an entity
func (r *TagAssociationRepo) DeleteForEntity(ctx context.Context, tenantID string, kind models.EntityKind, entityID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND entity_kind = ? AND entity_id = ?", tenantID, string(kind), entityID).
		Delete(&models.TagAssociation{}).Error
}

func kindStrings(kinds []models.EntityKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
