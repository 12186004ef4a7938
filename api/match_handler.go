package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/renecastillotv/clic-api-neon-sub000/errs"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"github.com/renecastillotv/clic-api-neon-sub000/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultPageSize    = 20
	defaultSimilarSize = 6
)

type matchHandler struct {
	responder Responder
	logger    zerolog.Logger
	engine    *services.Engine
}

func newMatchHandler(engine *services.Engine) matchHandler {
	logger := log.With().Str("handlerName", "matchHandler").Logger()

	return matchHandler{
		responder: NewResponder(logger),
		logger:    logger,
		engine:    engine,
	}
}

// matchPath resolves the URL segments after /match/ into tags and ranks listings by them
// @Summary Match listings by URL path
// @Description Resolves each path segment against tag slugs and localized aliases, then ranks listings
// @Tags Match
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param lang query string false "Language"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} MatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /match/{path} [get]
func (h matchHandler) matchPath() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := ctxGetTenantID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTenantError())
			return
		}
		lang := ctxGetLanguage(r.Context())

		limit, err := queryInt(r, "limit", defaultPageSize)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		offset, err := queryInt(r, "offset", 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// chi routes on RawPath when the request carries one, so only then is the
		// wildcard still escaped
		segments := pathSegments(chi.URLParam(r, "*"), r.URL.RawPath != "")

		tags, err := h.engine.ResolveTags(r.Context(), segments, tenantID, lang)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		results, err := h.engine.RankByTags(r.Context(), tags, tenantID, services.RankOptions{
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, MatchResponse{
			Language: lang,
			Tags:     viewTags(h.engine, tags, lang),
			Results:  results,
			Total:    len(results),
		})
	}
}

// similar ranks entities of the same kind sharing tags with the given one
// @Summary Similar entities
// @Tags Match
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param kind path string true "Entity kind"
// @Param entityID path string true "Entity ID"
// @Param limit query int false "Result count"
// @Success 200 {object} SimilarResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /similar/{kind}/{entityID} [get]
func (h matchHandler) similar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := ctxGetTenantID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTenantError())
			return
		}

		kind, entityID, err := entityParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		limit, err := queryInt(r, "limit", defaultSimilarSize)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		results, err := h.engine.SimilarTo(r.Context(), kind, entityID, tenantID, limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, SimilarResponse{
			Results: results,
			Total:   len(results),
		})
	}
}

// pathSegments splits a wildcard path into non-empty segments, unescaping them when
// escaped is set. A segment that cannot be unescaped is dropped like any other
// unrecognized segment.
func pathSegments(path string, escaped bool) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if escaped {
			segment, err := url.PathUnescape(part)
			if err != nil {
				continue
			}
			part = segment
		}
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

// entityParams validates the {kind} and {entityID} URL parameters
func entityParams(r *http.Request) (models.EntityKind, uuid.UUID, error) {
	kind := models.EntityKind(strings.ToLower(chi.URLParam(r, "kind")))
	if !kind.Valid() {
		return "", uuid.Nil, errs.NewInvalidFieldError("kind", fmt.Sprintf("unknown entity kind %q", kind))
	}

	entityID, err := uuid.Parse(chi.URLParam(r, "entityID"))
	if err != nil {
		return "", uuid.Nil, errs.NewInvalidFieldError("entityID", "must be a UUID")
	}
	return kind, entityID, nil
}

func viewTags(engine *services.Engine, tags []models.Tag, lang string) []TagView {
	weights := engine.Weights()
	views := make([]TagView, 0, len(tags))
	for _, tag := range tags {
		views = append(views, newTagView(tag, weights.For(tag.Kind), lang, engine.DefaultLanguage()))
	}
	return views
}
