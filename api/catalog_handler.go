package api

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/renecastillotv/clic-api-neon-sub000/errs"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"github.com/renecastillotv/clic-api-neon-sub000/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type catalogHandler struct {
	responder Responder
	logger    zerolog.Logger
	engine    *services.Engine
}

func newCatalogHandler(engine *services.Engine) catalogHandler {
	logger := log.With().Str("handlerName", "catalogHandler").Logger()

	return catalogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		engine:    engine,
	}
}

// WeightsResponse is the effective weight of every tag kind
type WeightsResponse struct {
	Default float64            `json:"default"`
	Weights map[string]float64 `json:"weights"`
}

// listTags lists the tenant's active tags
// @Summary List tags
// @Tags Catalog
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param kind query string false "Tag kind"
// @Success 200 {object} TagCollection
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tags [get]
func (h catalogHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := ctxGetTenantID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTenantError())
			return
		}
		lang := ctxGetLanguage(r.Context())

		kind := models.TagKind(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("kind"))))
		if kind != "" && !slices.Contains(models.TagKinds, kind) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("kind", fmt.Sprintf("unknown tag kind %q", kind)))
			return
		}

		tags, err := h.engine.Catalog(r.Context(), tenantID, kind)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		views := viewTags(h.engine, tags, lang)
		h.responder.WriteJSON(w, TagCollection{
			Tags:  views,
			Total: len(views),
		})
	}
}

// weights reports the weight table in effect
// @Summary Tag kind weights
// @Tags Catalog
// @Produce json
// @Success 200 {object} WeightsResponse
// @Router /weights [get]
func (h catalogHandler) weights() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, WeightsResponse{
			Default: services.DefaultKindWeight,
			Weights: h.engine.Weights().Snapshot(),
		})
	}
}
