package database

import (
	"context"
	"strings"

	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindActiveBySlugsOrAliases returns the tenant's active tags whose slug, or whose alias
// in one of langs, equals one of values ignoring case. Values are expected to be
// normalized already.
func (r *TagRepo) FindActiveBySlugsOrAliases(ctx context.Context, tenantID string, values []string, langs []string) ([]models.Tag, error) {
	if len(values) == 0 {
		return nil, nil
	}

	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}

	matchers := []clause.Expression{
		clause.Expr{SQL: "LOWER(slug) IN ?", Vars: []interface{}{lowered}},
	}
	for _, lang := range langs {
		for _, v := range lowered {
			matchers = append(matchers, aliasEquals{lang: lang, value: v})
		}
	}

	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Where(clause.Or(matchers...)).
		Find(&tags).Error
	return tags, err
}

// aliasEquals matches rows whose lower-cased alias for lang equals value.
// value must already be lower case.
type aliasEquals struct {
	lang  string
	value string
}

func (a aliasEquals) Build(builder clause.Builder) {
	stmt, ok := builder.(*gorm.Statement)
	if !ok {
		return
	}

	switch stmt.Dialector.Name() {
	case "postgres":
		builder.WriteString("LOWER(")
		builder.WriteQuoted("aliases")
		builder.WriteString(" ->> ")
		builder.AddVar(stmt, a.lang)
		builder.WriteString(") = ")
		builder.AddVar(stmt, a.value)
	default:
		builder.WriteString("LOWER(JSON_EXTRACT(")
		builder.WriteQuoted("aliases")
		builder.WriteString(", ")
		builder.AddVar(stmt, "$."+a.lang)
		builder.WriteString(")) = ")
		builder.AddVar(stmt, a.value)
	}
}

// FindActive returns the tenant's active tags ordered by kind and slug.
// An empty kind returns every kind.
func (r *TagRepo) FindActive(ctx context.Context, tenantID string, kind models.TagKind) ([]models.Tag, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ? AND active = ?", tenantID, true)
	if kind != "" {
		query = query.Where("kind = ?", string(kind))
	}

	var tags []models.Tag
	err := query.Order("kind ASC, slug ASC").Find(&tags).Error
	return tags, err
}

// Add inserts a new tag. Every column is written so that an inactive tag stays inactive.
func (r *TagRepo) Add(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Select("*").Create(tag).Error
}
