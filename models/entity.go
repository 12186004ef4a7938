package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntityKind names a taggable entity type.
type EntityKind string

const (
	EntityKindListing     EntityKind = "listing"
	EntityKindArticle     EntityKind = "article"
	EntityKindVideo       EntityKind = "video"
	EntityKindTestimonial EntityKind = "testimonial"
	EntityKindFAQ         EntityKind = "faq"
)

// ContentKinds are the non-listing entity kinds, in display order.
var ContentKinds = []EntityKind{
	EntityKindArticle,
	EntityKindVideo,
	EntityKindTestimonial,
	EntityKindFAQ,
}

func (k EntityKind) IsContent() bool {
	for _, c := range ContentKinds {
		if c == k {
			return true
		}
	}
	return false
}

func (k EntityKind) Valid() bool {
	return k == EntityKindListing || k.IsContent()
}

// ContentSummary is the card-sized projection of a content entity.
type ContentSummary struct {
	Kind        EntityKind `json:"kind"`
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Listing is a property listing. Status decides whether it is offered to visitors.
type Listing struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	TenantID    string    `json:"tenantId" db:"tenant_id" gorm:"type:text;not null;index"`
	Title       string    `json:"title" db:"title" gorm:"type:text;not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:text;not null"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url" gorm:"type:text"`
	Status      string    `json:"status" db:"status" gorm:"type:text;not null;index"`
	Price       *float64  `json:"price,omitempty" db:"price" gorm:"type:numeric"`
	Currency    *string   `json:"currency,omitempty" db:"currency" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null;index"`
}

// Article is an editorial blog article.
type Article struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	TenantID    string     `json:"tenantId" db:"tenant_id" gorm:"type:text;not null;index"`
	Title       string     `json:"title" db:"title" gorm:"type:text;not null"`
	Slug        string     `json:"slug" db:"slug" gorm:"type:text;not null"`
	Excerpt     *string    `json:"excerpt,omitempty" db:"excerpt" gorm:"type:text"`
	CoverImage  *string    `json:"coverImage,omitempty" db:"cover_image" gorm:"type:text"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" db:"published_at" gorm:"type:timestamp"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" gorm:"not null;index"`
}

// Video is an embedded video page.
type Video struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	TenantID     string    `json:"tenantId" db:"tenant_id" gorm:"type:text;not null;index"`
	Title        string    `json:"title" db:"title" gorm:"type:text;not null"`
	Slug         string    `json:"slug" db:"slug" gorm:"type:text;not null"`
	Description  *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty" db:"thumbnail_url" gorm:"type:text"`
	VideoURL     string    `json:"videoUrl" db:"video_url" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"not null;index"`
}

// Testimonial is a client review.
type Testimonial struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	TenantID    string    `json:"tenantId" db:"tenant_id" gorm:"type:text;not null;index"`
	ClientName  string    `json:"clientName" db:"client_name" gorm:"type:text;not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:text;not null"`
	Body        string    `json:"body" db:"body" gorm:"type:text;not null"`
	AvatarURL   *string   `json:"avatarUrl,omitempty" db:"avatar_url" gorm:"type:text"`
	Rating      int       `json:"rating" db:"rating" gorm:"type:integer;not null;default:5"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null;index"`
}

// FAQ is a question/answer pair.
type FAQ struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	TenantID  string    `json:"tenantId" db:"tenant_id" gorm:"type:text;not null;index"`
	Question  string    `json:"question" db:"question" gorm:"type:text;not null"`
	Slug      string    `json:"slug" db:"slug" gorm:"type:text;not null"`
	Answer    string    `json:"answer" db:"answer" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null;index"`
}

func (FAQ) TableName() string { return "faqs" }

func (l *Listing) BeforeCreate(tx *gorm.DB) error     { return ensureID(&l.ID) }
func (a *Article) BeforeCreate(tx *gorm.DB) error     { return ensureID(&a.ID) }
func (v *Video) BeforeCreate(tx *gorm.DB) error       { return ensureID(&v.ID) }
func (t *Testimonial) BeforeCreate(tx *gorm.DB) error { return ensureID(&t.ID) }
func (f *FAQ) BeforeCreate(tx *gorm.DB) error         { return ensureID(&f.ID) }

func ensureID(id *uuid.UUID) error {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	return nil
}

func (a Article) Summary() ContentSummary {
	return ContentSummary{
		Kind:        EntityKindArticle,
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Description: deref(a.Excerpt),
		ImageURL:    deref(a.CoverImage),
		CreatedAt:   a.CreatedAt,
	}
}

func (v Video) Summary() ContentSummary {
	return ContentSummary{
		Kind:        EntityKindVideo,
		ID:          v.ID,
		Title:       v.Title,
		Slug:        v.Slug,
		Description: deref(v.Description),
		ImageURL:    deref(v.ThumbnailURL),
		CreatedAt:   v.CreatedAt,
	}
}

func (t Testimonial) Summary() ContentSummary {
	return ContentSummary{
		Kind:        EntityKindTestimonial,
		ID:          t.ID,
		Title:       t.ClientName,
		Slug:        t.Slug,
		Description: truncate(t.Body, 280),
		ImageURL:    deref(t.AvatarURL),
		CreatedAt:   t.CreatedAt,
	}
}

func (f FAQ) Summary() ContentSummary {
	return ContentSummary{
		Kind:        EntityKindFAQ,
		ID:          f.ID,
		Title:       f.Question,
		Slug:        f.Slug,
		Description: truncate(f.Answer, 280),
		CreatedAt:   f.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
