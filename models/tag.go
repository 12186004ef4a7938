package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TagKind is the taxonomy bucket a tag belongs to. It decides the tag's default weight.
type TagKind string

const (
	TagKindLocation     TagKind = "location"
	TagKindPropertyType TagKind = "property-type"
	TagKindOperation    TagKind = "operation"
	TagKindFilter       TagKind = "filter"
	TagKindAmenity      TagKind = "amenity"
	TagKindFeature      TagKind = "feature"
	TagKindCuratedList  TagKind = "curated-list"
	TagKindContent      TagKind = "content"
	TagKindService      TagKind = "service"
	TagKindCountry      TagKind = "country"
	TagKindArea         TagKind = "area"
	TagKindInternal     TagKind = "internal"
)

// TagKinds lists every known kind.
var TagKinds = []TagKind{
	TagKindLocation, TagKindPropertyType, TagKindOperation, TagKindFilter,
	TagKindAmenity, TagKindFeature, TagKindCuratedList, TagKindContent,
	TagKindService, TagKindCountry, TagKindArea, TagKindInternal,
}

// Localized maps a language code to a localized string.
type Localized = datatypes.JSONType[map[string]string]

// NewLocalized builds a Localized value, lower-casing the language keys.
func NewLocalized(values map[string]string) Localized {
	m := make(map[string]string, len(values))
	for lang, v := range values {
		m[strings.ToLower(lang)] = v
	}
	return datatypes.NewJSONType(m)
}

// Tag is a catalog entry owned by the admin surface. The matching engine only reads it.
type Tag struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	TenantID      string    `json:"tenantId" db:"tenant_id" gorm:"type:text;not null;uniqueIndex:idx_tag_tenant_slug"`
	Slug          string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_tag_tenant_slug"`
	Kind          TagKind   `json:"kind" db:"kind" gorm:"type:text;not null;index"`
	Value         *string   `json:"value,omitempty" db:"value" gorm:"type:text"`
	QueryField    *string   `json:"queryField,omitempty" db:"query_field" gorm:"type:text"`
	QueryOperator *string   `json:"queryOperator,omitempty" db:"query_operator" gorm:"type:text"`
	DisplayNames  Localized `json:"displayNames" db:"display_names"`
	Aliases       Localized `json:"aliases" db:"aliases"`
	Active        bool      `json:"active" db:"active" gorm:"not null;default:true;index"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Alias returns the alias for lang, or "" when none is defined.
func (t Tag) Alias(lang string) string {
	return t.Aliases.Data()[strings.ToLower(lang)]
}

// DisplayName returns the name in lang, then in fallback, then the slug.
func (t Tag) DisplayName(lang, fallback string) string {
	names := t.DisplayNames.Data()
	if name := names[strings.ToLower(lang)]; name != "" {
		return name
	}
	if name := names[strings.ToLower(fallback)]; name != "" {
		return name
	}
	return t.Slug
}
