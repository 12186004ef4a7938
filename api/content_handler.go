package api

import (
	"net/http"
	"strings"

	"github.com/renecastillotv/clic-api-neon-sub000/errs"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"github.com/renecastillotv/clic-api-neon-sub000/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contentHandler struct {
	responder Responder
	logger    zerolog.Logger
	engine    *services.Engine
}

func newContentHandler(engine *services.Engine) contentHandler {
	logger := log.With().Str("handlerName", "contentHandler").Logger()

	return contentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		engine:    engine,
	}
}

// EntityTagsResponse lists the tags attached to one entity
type EntityTagsResponse struct {
	Kind     models.EntityKind `json:"kind"`
	EntityID string            `json:"entityId"`
	Tags     []TagView         `json:"tags"`
	Total    int               `json:"total"`
}

// related returns articles, videos, testimonials and FAQs sharing the given tags
// @Summary Related content
// @Tags Content
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param tags query string true "Comma separated tag slugs or aliases"
// @Param kind query string false "Content kind"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} RelatedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /related [get]
func (h contentHandler) related() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := ctxGetTenantID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTenantError())
			return
		}
		lang := ctxGetLanguage(r.Context())

		raw := strings.TrimSpace(r.URL.Query().Get("tags"))
		if raw == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("tags"))
			return
		}

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

		tags, err := h.engine.ResolveTags(r.Context(), strings.Split(raw, ","), tenantID, lang)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		results, err := h.engine.RelatedContent(r.Context(), tags, tenantID, services.ContentOptions{
			ContentKind: models.EntityKind(strings.ToLower(r.URL.Query().Get("kind"))),
			Limit:       limit,
			Offset:      offset,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, RelatedResponse{
			Language: lang,
			Tags:     viewTags(h.engine, tags, lang),
			Results:  results,
			Total:    len(results),
		})
	}
}

// entityTags lists the active tags of one entity, heaviest first
// @Summary Entity tags
// @Tags Content
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param kind path string true "Entity kind"
// @Param entityID path string true "Entity ID"
// @Success 200 {object} EntityTagsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /entities/{kind}/{entityID}/tags [get]
func (h contentHandler) entityTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := ctxGetTenantID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTenantError())
			return
		}
		lang := ctxGetLanguage(r.Context())

		kind, entityID, err := entityParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		weighted, err := h.engine.TagsForEntity(r.Context(), kind, entityID, tenantID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		views := make([]TagView, 0, len(weighted))
		for _, wt := range weighted {
			views = append(views, newTagView(wt.Tag, wt.Weight, lang, h.engine.DefaultLanguage()))
		}

		h.responder.WriteJSON(w, EntityTagsResponse{
			Kind:     kind,
			EntityID: entityID.String(),
			Tags:     views,
			Total:    len(views),
		})
	}
}
