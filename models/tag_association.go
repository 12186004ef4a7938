package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TagAssociation links one entity to one tag. An entity holds a given tag at most once.
type TagAssociation struct {
	ID         uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	TenantID   string     `json:"tenantId" db:"tenant_id" gorm:"type:text;not null;uniqueIndex:idx_tag_association_unique;index:idx_tag_association_tag"`
	EntityKind EntityKind `json:"entityKind" db:"entity_kind" gorm:"type:text;not null;uniqueIndex:idx_tag_association_unique"`
	EntityID   uuid.UUID  `json:"entityId" db:"entity_id" gorm:"type:uuid;not null;uniqueIndex:idx_tag_association_unique"`
	TagID      uuid.UUID  `json:"tagId" db:"tag_id" gorm:"type:uuid;not null;uniqueIndex:idx_tag_association_unique;index:idx_tag_association_tag"`
	// Weight overrides the weight class of the tag's kind when set.
	Weight    *float64  `json:"weight,omitempty" db:"weight" gorm:"type:double precision"`
	OrderHint int       `json:"orderHint" db:"order_hint" gorm:"type:integer;not null;default:0"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null"`

	Tag Tag `json:"tag,omitempty" gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE"`
}

func (a *TagAssociation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AssociationMatch is one association row joined with its (active) tag.
type AssociationMatch struct {
	EntityKind EntityKind
	EntityID   uuid.UUID
	TagID      uuid.UUID
	TagKind    TagKind
	Weight     *float64
	OrderHint  int
}
