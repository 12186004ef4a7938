// Package dbtest provides an in-memory sqlite database and seed helpers for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/renecastillotv/clic-api-neon-sub000/database"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// New opens a private in-memory database with every model migrated.
func New(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	// one connection keeps the shared-cache database free of lock contention
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

// TagOption customizes a seeded tag.
type TagOption func(*models.Tag)

func WithAliases(aliases map[string]string) TagOption {
	return func(t *models.Tag) { t.Aliases = models.NewLocalized(aliases) }
}

func WithDisplayNames(names map[string]string) TagOption {
	return func(t *models.Tag) { t.DisplayNames = models.NewLocalized(names) }
}

func Inactive() TagOption {
	return func(t *models.Tag) { t.Active = false }
}

func SeedTag(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID, slug string, kind models.TagKind, opts ...TagOption) *models.Tag {
	tb.Helper()
	now := time.Now().UTC()
	t := &models.Tag{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Slug:         slug,
		Kind:         kind,
		DisplayNames: models.NewLocalized(map[string]string{}),
		Aliases:      models.NewLocalized(map[string]string{}),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := database.NewTagRepo(tx).Add(ctx, t); err != nil {
		tb.Fatalf("seed tag: %v", err)
	}
	return t
}

func SeedListing(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID, status string, createdAt time.Time) *models.Listing {
	tb.Helper()
	l := &models.Listing{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Title:     "listing",
		Slug:      "listing-" + uuid.NewString()[:8],
		Status:    status,
		CreatedAt: createdAt,
	}
	if err := database.NewEntityRepo(tx).Add(ctx, l); err != nil {
		tb.Fatalf("seed listing: %v", err)
	}
	return l
}

func SeedArticle(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID, title string, createdAt time.Time) *models.Article {
	tb.Helper()
	excerpt := "excerpt of " + title
	a := &models.Article{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Title:     title,
		Slug:      "article-" + uuid.NewString()[:8],
		Excerpt:   &excerpt,
		CreatedAt: createdAt,
	}
	if err := database.NewEntityRepo(tx).Add(ctx, a); err != nil {
		tb.Fatalf("seed article: %v", err)
	}
	return a
}

func SeedVideo(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID, title string, createdAt time.Time) *models.Video {
	tb.Helper()
	v := &models.Video{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Title:     title,
		Slug:      "video-" + uuid.NewString()[:8],
		VideoURL:  "https://video.example/" + title,
		CreatedAt: createdAt,
	}
	if err := database.NewEntityRepo(tx).Add(ctx, v); err != nil {
		tb.Fatalf("seed video: %v", err)
	}
	return v
}

func SeedFAQ(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID, question string, createdAt time.Time) *models.FAQ {
	tb.Helper()
	f := &models.FAQ{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Question:  question,
		Slug:      "faq-" + uuid.NewString()[:8],
		Answer:    "answer to " + question,
		CreatedAt: createdAt,
	}
	if err := database.NewEntityRepo(tx).Add(ctx, f); err != nil {
		tb.Fatalf("seed faq: %v", err)
	}
	return f
}

// Associate tags an entity. A nil weight leaves the weight class of the tag kind in effect.
func Associate(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID string, kind models.EntityKind, entityID, tagID uuid.UUID, weight *float64, orderHint int) *models.TagAssociation {
	tb.Helper()
	a := &models.TagAssociation{
		ID:         uuid.New(),
		TenantID:   tenantID,
		EntityKind: kind,
		EntityID:   entityID,
		TagID:      tagID,
		Weight:     weight,
		OrderHint:  orderHint,
		CreatedAt:  time.Now().UTC(),
	}
	if err := database.NewTagAssociationRepo(tx).Add(ctx, a); err != nil {
		tb.Fatalf("seed tag association: %v", err)
	}
	return a
}

func PtrFloat(v float64) *float64 { return &v }
