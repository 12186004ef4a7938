package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/renecastillotv/clic-api-neon-sub000/database/dbtest"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarTo_RanksPeersAndExcludesSelf(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := ctxT(t)

	piantini := dbtest.SeedTag(t, ctx, db, tenantA, "piantini", models.TagKindLocation)
	apartment := dbtest.SeedTag(t, ctx, db, tenantA, "apartment", models.TagKindPropertyType)
	pool := dbtest.SeedTag(t, ctx, db, tenantA, "pool", models.TagKindAmenity)

	source := dbtest.SeedListing(t, ctx, db, tenantA, "active", baseTime)
	near := dbtest.SeedListing(t, ctx, db, tenantA, "active", baseTime)
	far := dbtest.SeedListing(t, ctx, db, tenantA, "active", baseTime.Add(time.Hour))
	sold := dbtest.SeedListing(t, ctx, db, tenantA, "sold", baseTime)
	article := dbtest.SeedArticle(t, ctx, db, tenantA, "living in piantini", baseTime)

	for _, tag := range []*models.Tag{piantini, apartment, pool} {
		dbtest.Associate(t, ctx, db, tenantA, models.EntityKindListing, source.ID, tag.ID, nil, 0)
	}
	dbtest.Associate(t, ctx, db, tenantA, models.EntityKindListing, near.ID, piantini.ID, nil, 0)
	dbtest.Associate(t, ctx, db, tenantA, models.EntityKindListing, near.ID, apartment.ID, nil, 1)
	dbtest.Associate(t, ctx, db, tenantA, models.EntityKindListing, far.ID, pool.ID, nil, 0)
	dbtest.Associate(t, ctx, db, tenantA, models.EntityKindListing, sold.ID, piantini.ID, nil, 0)
	dbtest.Associate(t, ctx, db, tenantA, models.EntityKindArticle, article.ID, piantini.ID, nil, 0)

	similar, err := engine.SimilarTo(ctx, models.EntityKindListing, source.ID, tenantA, 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{near.ID, far.ID}, ids(similar))

	limited, err := engine.SimilarTo(ctx, models.EntityKindListing, source.ID, tenantA, 1)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{near.ID}, ids(limited))
}

func TestSimilarTo_UntaggedEntity(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := ctxT(t)

	piantini := dbtest.SeedTag(t, ctx, db, tenantA, "piantini", models.TagKindLocation)
	other := dbtest.SeedListing(t, ctx, db, tenantA, "active", baseTime)
	dbtest.Associate(t, ctx, db, tenantA, models.EntityKindListing, other.ID, piantini.ID, nil, 0)
	untagged := dbtest.SeedListing(t, ctx, db, tenantA, "active", baseTime)

	similar, err := engine.SimilarTo(ctx, models.EntityKindListing, untagged.ID, tenantA, 10)
	require.NoError(t, err)
	assert.NotNil(t, similar)
	assert.Empty(t, similar)
}
