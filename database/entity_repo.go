package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"gorm.io/gorm"
)

// maxIDsPerQuery keeps IN lists well below driver parameter limits.
const maxIDsPerQuery = 500

// EntityRepo reads the per-kind entity tables: listings, articles, videos, testimonials and faqs.
type EntityRepo struct {
	db *gorm.DB
}

func NewEntityRepo(db *gorm.DB) *EntityRepo {
	return &EntityRepo{db}
}

func modelFor(kind models.EntityKind) (interface{}, error) {
	switch kind {
	case models.EntityKindListing:
		return &models.Listing{}, nil
	case models.EntityKindArticle:
		return &models.Article{}, nil
	case models.EntityKindVideo:
		return &models.Video{}, nil
	case models.EntityKindTestimonial:
		return &models.Testimonial{}, nil
	case models.EntityKindFAQ:
		return &models.FAQ{}, nil
	}
	return nil, fmt.Errorf("unknown entity kind %q", kind)
}

// AvailableListings restricts a listings query to the given statuses.
func AvailableListings(statuses []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(statuses) == 0 {
			return db
		}
		return db.Where("status IN ?", statuses)
	}
}

// CreatedAt returns the creation time of each id that exists for the tenant and passes scopes.
// Ids that are missing from the result are not candidates.
func (r *EntityRepo) CreatedAt(ctx context.Context, tenantID string, kind models.EntityKind, ids []uuid.UUID, scopes ...func(*gorm.DB) *gorm.DB) (map[uuid.UUID]time.Time, error) {
	model, err := modelFor(kind)
	if err != nil {
		return nil, err
	}

	type row struct {
		ID        uuid.UUID
		CreatedAt time.Time
	}

	out := make(map[uuid.UUID]time.Time, len(ids))
	for start := 0; start < len(ids); start += maxIDsPerQuery {
		end := min(start+maxIDsPerQuery, len(ids))

		var rows []row
		err := r.db.WithContext(ctx).
			Model(model).
			Scopes(scopes...).
			Select("id, created_at").
			Where("tenant_id = ? AND id IN ?", tenantID, ids[start:end]).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, rw := range rows {
			out[rw.ID] = rw.CreatedAt
		}
	}
	return out, nil
}

// Summary returns the card projection of one content entity, or nil when it does not exist.
func (r *EntityRepo) Summary(ctx context.Context, tenantID string, kind models.EntityKind, id uuid.UUID) (*models.ContentSummary, error) {
	var summary models.ContentSummary
	var err error

	switch kind {
	case models.EntityKindArticle:
		var a models.Article
		if err = r.first(ctx, tenantID, id, &a); err == nil {
			summary = a.Summary()
		}
	case models.EntityKindVideo:
		var v models.Video
		if err = r.first(ctx, tenantID, id, &v); err == nil {
			summary = v.Summary()
		}
	case models.EntityKindTestimonial:
		var t models.Testimonial
		if err = r.first(ctx, tenantID, id, &t); err == nil {
			summary = t.Summary()
		}
	case models.EntityKindFAQ:
		var f models.FAQ
		if err = r.first(ctx, tenantID, id, &f); err == nil {
			summary = f.Summary()
		}
	default:
		return nil, fmt.Errorf("no summary for entity kind %q", kind)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *EntityRepo) first(ctx context.Context, tenantID string, id uuid.UUID, dest interface{}) error {
	return r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(dest, "id = ?", id).Error
}

// Add inserts any entity model into its table
func (r *EntityRepo) Add(ctx context.Context, entity interface{}) error {
	return r.db.WithContext(ctx).Create(entity).Error
}
