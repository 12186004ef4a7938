package services

import (
	"cmp"
	"context"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/renecastillotv/clic-api-neon-sub000/errs"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
)

// Scores are rounded to nine decimal places once and then compared exactly.
const scorePrecision = 1e9

// WeightedTag is a tag as attached to one entity.
type WeightedTag struct {
	Tag       models.Tag `json:"tag"`
	Weight    float64    `json:"weight"`
	OrderHint int        `json:"orderHint"`
}

// RankedEntity is one ranking result.
type RankedEntity struct {
	Kind       models.EntityKind `json:"kind"`
	ID         uuid.UUID         `json:"id"`
	MatchCount int               `json:"matchCount"`
	Score      float64           `json:"score"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// RankOptions controls candidacy and the page window of RankByTags.
type RankOptions struct {
	// Kinds restricts candidates to these entity kinds. Empty means listings.
	Kinds []models.EntityKind
	// Limit <= 0 returns every result after Offset.
	Limit           int
	Offset          int
	ExcludeEntityID *uuid.UUID
}

func (o RankOptions) kinds() []models.EntityKind {
	if len(o.Kinds) == 0 {
		return []models.EntityKind{models.EntityKindListing}
	}
	return o.Kinds
}

// TagsForEntity returns the active tags of one entity with their effective weight,
// heaviest first, then by order hint. An untagged entity yields an empty slice.
func (e *Engine) TagsForEntity(ctx context.Context, kind models.EntityKind, entityID uuid.UUID, tenantID string) ([]WeightedTag, error) {
	associations, err := e.associations.FindForEntity(ctx, tenantID, kind, entityID)
	if err != nil {
		return nil, errs.NewStoreAccessError("find", "entity tags", err)
	}

	tags := make([]WeightedTag, 0, len(associations))
	seen := make(map[uuid.UUID]struct{}, len(associations))
	for _, a := range associations {
		if !a.Tag.Active || a.Tag.ID == uuid.Nil {
			continue
		}
		if _, dup := seen[a.TagID]; dup {
			continue
		}
		seen[a.TagID] = struct{}{}
		tags = append(tags, WeightedTag{
			Tag:       a.Tag,
			Weight:    roundScore(e.weights.Effective(a.Weight, a.Tag.Kind)),
			OrderHint: a.OrderHint,
		})
	}

	slices.SortStableFunc(tags, func(a, b WeightedTag) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		if c := cmp.Compare(a.OrderHint, b.OrderHint); c != 0 {
			return c
		}
		return cmp.Compare(a.Tag.Slug, b.Tag.Slug)
	})
	return tags, nil
}

// RankByTags ranks the entities associated with any of tags by matched tag count, then by
// the summed weight of the matched associations, then newest first. Kind and id settle
// whatever is left so that pages are stable across calls. No tags means no results.
func (e *Engine) RankByTags(ctx context.Context, tags []models.Tag, tenantID string, opts RankOptions) ([]RankedEntity, error) {
	ranked, err := e.rank(ctx, tags, tenantID, opts.kinds(), opts.ExcludeEntityID)
	if err != nil {
		return nil, err
	}
	return paginate(ranked, opts.Offset, opts.Limit), nil
}

type entityRef struct {
	kind models.EntityKind
	id   uuid.UUID
}

type candidate struct {
	tags  map[uuid.UUID]struct{}
	score float64
}

func (e *Engine) rank(ctx context.Context, tags []models.Tag, tenantID string, kinds []models.EntityKind, exclude *uuid.UUID) ([]RankedEntity, error) {
	tagIDs := make([]uuid.UUID, 0, len(tags))
	seen := make(map[uuid.UUID]struct{}, len(tags))
	for _, t := range tags {
		if _, dup := seen[t.ID]; dup || t.ID == uuid.Nil {
			continue
		}
		seen[t.ID] = struct{}{}
		tagIDs = append(tagIDs, t.ID)
	}
	if len(tagIDs) == 0 {
		return []RankedEntity{}, nil
	}

	matches, err := e.associations.FindMatches(ctx, tenantID, tagIDs, kinds)
	if err != nil {
		return nil, errs.NewStoreAccessError("find", "tag associations", err)
	}

	// summing in a fixed order keeps equal inputs bit-for-bit equal
	slices.SortFunc(matches, func(a, b models.AssociationMatch) int {
		return cmp.Compare(a.TagID.String(), b.TagID.String())
	})

	candidates := make(map[entityRef]*candidate)
	for _, m := range matches {
		if _, wanted := seen[m.TagID]; !wanted {
			continue
		}
		if exclude != nil && m.EntityID == *exclude {
			continue
		}
		ref := entityRef{kind: m.EntityKind, id: m.EntityID}
		c, ok := candidates[ref]
		if !ok {
			c = &candidate{tags: map[uuid.UUID]struct{}{}}
			candidates[ref] = c
		}
		if _, dup := c.tags[m.TagID]; dup {
			continue
		}
		c.tags[m.TagID] = struct{}{}
		c.score += e.weights.Effective(m.Weight, m.TagKind)
	}
	if len(candidates) == 0 {
		return []RankedEntity{}, nil
	}

	idsByKind := make(map[models.EntityKind][]uuid.UUID)
	for ref := range candidates {
		idsByKind[ref.kind] = append(idsByKind[ref.kind], ref.id)
	}

	ranked := make([]RankedEntity, 0, len(candidates))
	for _, kind := range kinds {
		ids := idsByKind[kind]
		if len(ids) == 0 {
			continue
		}
		createdAt, err := e.entities.CreatedAt(ctx, tenantID, kind, ids, e.availability[kind]...)
		if err != nil {
			return nil, errs.NewStoreAccessError("find", string(kind)+" candidates", err)
		}
		for _, id := range ids {
			ts, ok := createdAt[id]
			if !ok {
				continue
			}
			c := candidates[entityRef{kind: kind, id: id}]
			ranked = append(ranked, RankedEntity{
				Kind:       kind,
				ID:         id,
				MatchCount: len(c.tags),
				Score:      roundScore(c.score),
				CreatedAt:  ts,
			})
		}
	}

	slices.SortFunc(ranked, compareRanked)
	return ranked, nil
}

// compareRanked orders by match count desc, score desc, created desc, kind asc, id asc.
func compareRanked(a, b RankedEntity) int {
	if c := cmp.Compare(b.MatchCount, a.MatchCount); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return cmp.Compare(a.ID.String(), b.ID.String())
}

func roundScore(s float64) float64 {
	return math.Round(s*scorePrecision) / scorePrecision
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
