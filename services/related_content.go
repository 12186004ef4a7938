package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/renecastillotv/clic-api-neon-sub000/database"
	"github.com/renecastillotv/clic-api-neon-sub000/errs"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"golang.org/x/sync/errgroup"
)

// DetailFetcher loads the card summary of one entity. A nil summary with a nil error
// means the entity has no detail record.
type DetailFetcher interface {
	FetchSummary(ctx context.Context, tenantID string, id uuid.UUID) (*models.ContentSummary, error)
}

type DetailFetcherFunc func(ctx context.Context, tenantID string, id uuid.UUID) (*models.ContentSummary, error)

func (f DetailFetcherFunc) FetchSummary(ctx context.Context, tenantID string, id uuid.UUID) (*models.ContentSummary, error) {
	return f(ctx, tenantID, id)
}

// FetcherRegistry holds one DetailFetcher per entity kind.
type FetcherRegistry map[models.EntityKind]DetailFetcher

func (r FetcherRegistry) Register(kind models.EntityKind, fetcher DetailFetcher) {
	r[kind] = fetcher
}

func (r FetcherRegistry) Lookup(kind models.EntityKind) (DetailFetcher, bool) {
	f, ok := r[kind]
	return f, ok && f != nil
}

func summaryFetcher(repo *database.EntityRepo, kind models.EntityKind) DetailFetcher {
	return DetailFetcherFunc(func(ctx context.Context, tenantID string, id uuid.UUID) (*models.ContentSummary, error) {
		return repo.Summary(ctx, tenantID, kind, id)
	})
}

// ContentOptions controls RelatedContent.
type ContentOptions struct {
	// ContentKind restricts results to one non-listing kind. Empty means every content kind.
	ContentKind models.EntityKind
	Limit       int
	Offset      int
}

// RelatedItem is a ranked content entity with its summary.
type RelatedItem struct {
	Summary    models.ContentSummary `json:"summary"`
	MatchCount int                   `json:"matchCount"`
	Score      float64               `json:"score"`
}

// RelatedContent ranks non-listing content sharing tags and hydrates each result into its
// summary. Entities whose summary is missing or fails to load are dropped; the rest keep
// their rank order.
func (e *Engine) RelatedContent(ctx context.Context, tags []models.Tag, tenantID string, opts ContentOptions) ([]RelatedItem, error) {
	kinds := models.ContentKinds
	if opts.ContentKind != "" {
		if !opts.ContentKind.IsContent() {
			return nil, errs.NewInvalidFieldError("kind", fmt.Sprintf("%q is not a content kind", opts.ContentKind))
		}
		kinds = []models.EntityKind{opts.ContentKind}
	}

	ranked, err := e.rank(ctx, tags, tenantID, kinds, nil)
	if err != nil {
		return nil, err
	}

	offset := max(opts.Offset, 0)
	want := len(ranked)
	if opts.Limit > 0 {
		want = min(offset+opts.Limit, len(ranked))
	}

	// hydrate in rank order until the window is full, so dropped entries don't shrink pages
	items := make([]RelatedItem, 0, want)
	for next := 0; len(items) < want && next < len(ranked); {
		end := min(next+want-len(items), len(ranked))
		batch, err := e.hydrate(ctx, tenantID, ranked[next:end])
		if err != nil {
			return nil, err
		}
		items = append(items, batch...)
		next = end
	}

	return paginate(items, offset, opts.Limit), nil
}

func (e *Engine) hydrate(ctx context.Context, tenantID string, ranked []RankedEntity) ([]RelatedItem, error) {
	results := make([]*RelatedItem, len(ranked))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.hydrationConcurrency)

	for i := range ranked {
		r := ranked[i]
		g.Go(func() error {
			fetcher, ok := e.fetchers.Lookup(r.Kind)
			if !ok {
				e.logger.Warn().Str("kind", string(r.Kind)).Msg("no detail fetcher registered, dropping entity")
				return nil
			}

			summary, err := fetcher.FetchSummary(gctx, tenantID, r.ID)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				e.logger.Warn().Err(err).
					Str("tenantID", tenantID).
					Str("kind", string(r.Kind)).
					Str("entityID", r.ID.String()).
					Msg("detail lookup failed, dropping entity")
				return nil
			}
			if summary == nil {
				return nil
			}

			results[i] = &RelatedItem{
				Summary:    *summary,
				MatchCount: r.MatchCount,
				Score:      r.Score,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errs.NewStoreAccessError("hydrate", "related content", err)
	}

	items := make([]RelatedItem, 0, len(results))
	for _, item := range results {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items, nil
}
