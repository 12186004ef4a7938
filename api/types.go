package api

import (
	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"github.com/renecastillotv/clic-api-neon-sub000/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler  healthHandler
	matchHandler   matchHandler
	contentHandler contentHandler
	catalogHandler catalogHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"kind"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// TagView is a tag localized for the request language
type TagView struct {
	ID     string         `json:"id"`
	Slug   string         `json:"slug"`
	Kind   models.TagKind `json:"kind"`
	Name   string         `json:"name"`
	Weight float64        `json:"weight"`
	Value  *string        `json:"value,omitempty"`
	Field  *string        `json:"queryField,omitempty"`
	Op     *string        `json:"queryOperator,omitempty"`
}

func newTagView(tag models.Tag, weight float64, lang, fallback string) TagView {
	return TagView{
		ID:     tag.ID.String(),
		Slug:   tag.Slug,
		Kind:   tag.Kind,
		Name:   tag.DisplayName(lang, fallback),
		Weight: weight,
		Value:  tag.Value,
		Field:  tag.QueryField,
		Op:     tag.QueryOperator,
	}
}

// MatchResponse answers "what matches this URL"
type MatchResponse struct {
	Language string                  `json:"language"`
	Tags     []TagView               `json:"tags"`
	Results  []services.RankedEntity `json:"results"`
	Total    int                     `json:"total"`
}

// SimilarResponse answers "what is similar to this entity"
type SimilarResponse struct {
	Results []services.RankedEntity `json:"results"`
	Total   int                     `json:"total"`
}

// RelatedResponse answers "what content relates to these tags"
type RelatedResponse struct {
	Language string                 `json:"language"`
	Tags     []TagView              `json:"tags"`
	Results  []services.RelatedItem `json:"results"`
	Total    int                    `json:"total"`
}

// TagCollection lists tags
type TagCollection struct {
	Tags  []TagView `json:"tags"`
	Total int       `json:"total"`
}
