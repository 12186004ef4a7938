package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/renecastillotv/clic-api-neon-sub000/config"
	"github.com/renecastillotv/clic-api-neon-sub000/database"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TagCatalog reads the tenant's tag definitions.
type TagCatalog interface {
	FindActiveBySlugsOrAliases(ctx context.Context, tenantID string, values []string, langs []string) ([]models.Tag, error)
	FindActive(ctx context.Context, tenantID string, kind models.TagKind) ([]models.Tag, error)
}

// AssociationStore reads entity to tag links.
type AssociationStore interface {
	FindForEntity(ctx context.Context, tenantID string, kind models.EntityKind, entityID uuid.UUID) ([]models.TagAssociation, error)
	FindMatches(ctx context.Context, tenantID string, tagIDs []uuid.UUID, kinds []models.EntityKind) ([]models.AssociationMatch, error)
}

// EntityStore reads creation times of candidate entities, applying candidacy scopes.
type EntityStore interface {
	CreatedAt(ctx context.Context, tenantID string, kind models.EntityKind, ids []uuid.UUID, scopes ...func(*gorm.DB) *gorm.DB) (map[uuid.UUID]time.Time, error)
}

// Engine resolves URL segments to tags and ranks entities by weighted tag overlap.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	tags         TagCatalog
	associations AssociationStore
	entities     EntityStore

	weights              WeightTable
	defaultLanguage      string
	availability         map[models.EntityKind][]func(*gorm.DB) *gorm.DB
	fetchers             FetcherRegistry
	hydrationConcurrency int
	logger               zerolog.Logger
}

type Option func(*Engine)

func WithWeights(weights WeightTable) Option {
	return func(e *Engine) {
		e.weights = weights
	}
}

func WithDefaultLanguage(lang string) Option {
	return func(e *Engine) {
		e.defaultLanguage = CanonicalLanguage(lang)
	}
}

// WithAvailability adds a candidacy scope for one entity kind, e.g. "listing is published".
func WithAvailability(kind models.EntityKind, scope func(*gorm.DB) *gorm.DB) Option {
	return func(e *Engine) {
		e.availability[kind] = append(e.availability[kind], scope)
	}
}

func WithDetailFetcher(kind models.EntityKind, fetcher DetailFetcher) Option {
	return func(e *Engine) {
		e.fetchers.Register(kind, fetcher)
	}
}

func WithHydrationConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.hydrationConcurrency = n
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func NewEngine(tags TagCatalog, associations AssociationStore, entities EntityStore, opts ...Option) *Engine {
	e := &Engine{
		tags:                 tags,
		associations:         associations,
		entities:             entities,
		weights:              NewWeightTable(nil),
		defaultLanguage:      config.DefaultLanguage,
		availability:         map[models.EntityKind][]func(*gorm.DB) *gorm.DB{},
		fetchers:             FetcherRegistry{},
		hydrationConcurrency: config.DefaultHydrationConcurrency,
		logger:               log.With().Str("component", "tagEngine").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngineFromDatabase wires the engine to the gorm repositories and the startup config.
func NewEngineFromDatabase(db database.Database, cfg config.Tagging, opts ...Option) *Engine {
	entities := db.EntityRepo()

	base := []Option{
		WithWeights(NewWeightTable(cfg.WeightOverrides)),
		WithDefaultLanguage(cfg.DefaultLanguage),
		WithAvailability(models.EntityKindListing, database.AvailableListings(cfg.ListingAvailableStatuses)),
		WithHydrationConcurrency(cfg.HydrationConcurrency),
	}
	for _, kind := range models.ContentKinds {
		base = append(base, WithDetailFetcher(kind, summaryFetcher(entities, kind)))
	}

	return NewEngine(db.TagRepo(), db.TagAssociationRepo(), entities, append(base, opts...)...)
}

// Weights exposes the weight table in use.
func (e *Engine) Weights() WeightTable {
	return e.weights
}

// DefaultLanguage is the alias fallback language.
func (e *Engine) DefaultLanguage() string {
	return e.defaultLanguage
}
