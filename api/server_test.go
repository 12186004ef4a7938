package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/renecastillotv/clic-api-neon-sub000/config"
	"github.com/renecastillotv/clic-api-neon-sub000/database"
	"github.com/renecastillotv/clic-api-neon-sub000/database/dbtest"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"github.com/renecastillotv/clic-api-neon-sub000/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testTenant = "clic-rd"

type fixture struct {
	router    http.Handler
	db        *gorm.DB
	sale      *models.Tag
	apartment *models.Tag
	piantini  *models.Tag
	listings  []*models.Listing
	video     *models.Video
	article   *models.Article
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db := dbtest.New(t)
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	f := fixture{db: db}
	f.sale = dbtest.SeedTag(t, ctx, db, testTenant, "sale", models.TagKindOperation,
		dbtest.WithAliases(map[string]string{"es": "comprar", "en": "buy"}),
		dbtest.WithDisplayNames(map[string]string{"es": "Venta", "en": "For sale"}))
	f.apartment = dbtest.SeedTag(t, ctx, db, testTenant, "apartment", models.TagKindPropertyType,
		dbtest.WithAliases(map[string]string{"es": "apartamento"}),
		dbtest.WithDisplayNames(map[string]string{"es": "Apartamento"}))
	f.piantini = dbtest.SeedTag(t, ctx, db, testTenant, "piantini", models.TagKindLocation)

	both := dbtest.SeedListing(t, ctx, db, testTenant, "active", base)
	one := dbtest.SeedListing(t, ctx, db, testTenant, "active", base.Add(time.Hour))
	f.listings = []*models.Listing{both, one}
	dbtest.Associate(t, ctx, db, testTenant, models.EntityKindListing, both.ID, f.sale.ID, nil, 0)
	dbtest.Associate(t, ctx, db, testTenant, models.EntityKindListing, both.ID, f.apartment.ID, nil, 1)
	dbtest.Associate(t, ctx, db, testTenant, models.EntityKindListing, one.ID, f.sale.ID, nil, 0)

	f.video = dbtest.SeedVideo(t, ctx, db, testTenant, "piantini tour", base)
	f.article = dbtest.SeedArticle(t, ctx, db, testTenant, "piantini guide", base)
	dbtest.Associate(t, ctx, db, testTenant, models.EntityKindVideo, f.video.ID, f.piantini.ID, nil, 0)
	dbtest.Associate(t, ctx, db, testTenant, models.EntityKindArticle, f.article.ID, f.piantini.ID, nil, 0)

	engine := services.NewEngineFromDatabase(database.New(db), config.NewTagging(nil))
	f.router = newRouter(engine, withConfig(map[string]string{}), withStartupTime(time.Now()))
	return f
}

func (f fixture) get(t *testing.T, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func tenantHeaders() map[string]string {
	return map[string]string{tenantHeader: testTenant}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth_NoTenantNeeded(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[HealthResponse](t, rec).Status)
}

func TestRequireTenant(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/match/comprar", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[ErrorResponse](t, rec)
	assert.Equal(t, "tenant", body.Field)
	assert.Equal(t, "error", body.Status)
}

func TestMatchPath(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/match/comprar/apartamento/unknown-segment", tenantHeaders())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[MatchResponse](t, rec)
	assert.Equal(t, "es", body.Language)
	assert.Len(t, body.Tags, 2)
	require.Len(t, body.Results, 2)
	assert.Equal(t, f.listings[0].ID, body.Results[0].ID)
	assert.Equal(t, 2, body.Results[0].MatchCount)
	assert.Equal(t, f.listings[1].ID, body.Results[1].ID)

	names := map[string]string{}
	for _, tag := range body.Tags {
		names[tag.Slug] = tag.Name
	}
	assert.Equal(t, "Venta", names["sale"])
	assert.Equal(t, "Apartamento", names["apartment"])
}

func TestMatchPath_NegotiatesLanguage(t *testing.T) {
	f := newFixture(t)

	headers := tenantHeaders()
	headers["Accept-Language"] = "en-US,en;q=0.9"
	rec := f.get(t, "/match/buy", headers)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[MatchResponse](t, rec)
	assert.Equal(t, "en", body.Language)
	require.Len(t, body.Tags, 1)
	assert.Equal(t, "For sale", body.Tags[0].Name)
	assert.Len(t, body.Results, 2)

	// ?lang= wins over the header
	rec = f.get(t, "/match/comprar?lang=es", headers)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "es", decode[MatchResponse](t, rec).Language)

	// unsupported languages fall back to the default
	rec = f.get(t, "/match/comprar?lang=fr", tenantHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "es", decode[MatchResponse](t, rec).Language)
}

func TestMatchPath_Paging(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/match/comprar?limit=1&offset=1", tenantHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[MatchResponse](t, rec)
	require.Len(t, body.Results, 1)
	assert.Equal(t, f.listings[0].ID, body.Results[0].ID)

	rec = f.get(t, "/match/comprar?limit=-2", tenantHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "limit", decode[ErrorResponse](t, rec).Field)
}

func TestMatchPath_NothingResolves(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/match/nada", tenantHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"language":"es","tags":[],"results":[],"total":0}`, rec.Body.String())
}

func TestMatchPath_LiteralPercentSegmentIsDropped(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/match/comprar/oferta-100%25", tenantHeaders())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[MatchResponse](t, rec)
	require.Len(t, body.Tags, 1)
	assert.Equal(t, "sale", body.Tags[0].Slug)
	assert.Len(t, body.Results, 2)
}

func TestPathSegments(t *testing.T) {
	assert.Equal(t, []string{"comprar", "oferta-100%"}, pathSegments("comprar//oferta-100%/", false))
	assert.Equal(t, []string{"comprar", "a b"}, pathSegments("comprar/a%20b", true))
	// undecodable segments are skipped instead of failing the request
	assert.Equal(t, []string{"comprar"}, pathSegments("comprar/bad%zz", true))
	assert.Empty(t, pathSegments("", false))
}

func TestSimilar(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/similar/listing/"+f.listings[0].ID.String(), tenantHeaders())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[SimilarResponse](t, rec)
	require.Len(t, body.Results, 1)
	assert.Equal(t, f.listings[1].ID, body.Results[0].ID)

	rec = f.get(t, "/similar/podcast/"+uuid.NewString(), tenantHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "kind", decode[ErrorResponse](t, rec).Field)

	rec = f.get(t, "/similar/listing/not-a-uuid", tenantHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "entityID", decode[ErrorResponse](t, rec).Field)
}

func TestRelated(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/related?tags=piantini", tenantHeaders())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[RelatedResponse](t, rec)
	require.Len(t, body.Results, 2)

	rec = f.get(t, "/related?tags=piantini&kind=video", tenantHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode[RelatedResponse](t, rec)
	require.Len(t, body.Results, 1)
	assert.Equal(t, f.video.ID, body.Results[0].Summary.ID)
	assert.Equal(t, "piantini tour", body.Results[0].Summary.Title)

	rec = f.get(t, "/related?tags=piantini&kind=listing", tenantHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.get(t, "/related", tenantHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "tags", decode[ErrorResponse](t, rec).Field)
}

func TestEntityTags(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/entities/listing/"+f.listings[0].ID.String()+"/tags", tenantHeaders())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[EntityTagsResponse](t, rec)
	require.Len(t, body.Tags, 2)
	assert.Equal(t, "apartment", body.Tags[0].Slug)
	assert.InDelta(t, 1.3, body.Tags[0].Weight, 1e-9)
	assert.Equal(t, "sale", body.Tags[1].Slug)
}

func TestCatalog(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/tags", tenantHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[TagCollection](t, rec).Total)

	rec = f.get(t, "/tags?kind=location", tenantHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	tags := decode[TagCollection](t, rec)
	require.Len(t, tags.Tags, 1)
	assert.Equal(t, "piantini", tags.Tags[0].Slug)
	assert.Equal(t, "piantini", tags.Tags[0].Name)

	rec = f.get(t, "/tags?kind=planet", tenantHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.get(t, "/weights", tenantHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	weights := decode[WeightsResponse](t, rec)
	assert.Equal(t, 1.5, weights.Weights["location"])
	assert.Equal(t, 1.0, weights.Default)
}

func TestCORSPreflightRejectsUnknownOrigin(t *testing.T) {
	db := dbtest.New(t)
	engine := services.NewEngineFromDatabase(database.New(db), config.NewTagging(nil))
	router := newRouter(engine, withConfig(map[string]string{"ACCEPTED_ORIGINS": "https://clic.do"}))

	req := httptest.NewRequest(http.MethodOptions, "/match/comprar", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodOptions, "/match/comprar", nil)
	req.Header.Set("Origin", "https://clic.do")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "https://clic.do", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogInternalServerErrors_RecoversPanics(t *testing.T) {
	handler := LogInternalServerErrors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/match/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Cause, "boom")
}
