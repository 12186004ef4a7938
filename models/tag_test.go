package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTag_LocalizedLookups(t *testing.T) {
	tag := Tag{
		Slug:         "sale",
		DisplayNames: NewLocalized(map[string]string{"ES": "Venta"}),
		Aliases:      NewLocalized(map[string]string{"es": "comprar", "En": "buy"}),
	}

	assert.Equal(t, "comprar", tag.Alias("es"))
	assert.Equal(t, "buy", tag.Alias("EN"))
	assert.Equal(t, "", tag.Alias("fr"))

	assert.Equal(t, "Venta", tag.DisplayName("es", "en"))
	assert.Equal(t, "Venta", tag.DisplayName("fr", "es"))
	assert.Equal(t, "sale", tag.DisplayName("fr", "de"))
}

func TestEntityKind(t *testing.T) {
	assert.True(t, EntityKindListing.Valid())
	assert.False(t, EntityKindListing.IsContent())
	assert.True(t, EntityKindFAQ.IsContent())
	assert.False(t, EntityKind("podcast").Valid())
}

func TestSummaries(t *testing.T) {
	long := strings.Repeat("a", 300)
	summary := Testimonial{ClientName: "Ana", Body: long}.Summary()

	assert.Equal(t, EntityKindTestimonial, summary.Kind)
	assert.Equal(t, "Ana", summary.Title)
	assert.Equal(t, 281, len([]rune(summary.Description)))

	cover := "https://img.example/a.jpg"
	article := Article{Title: "Guide", CoverImage: &cover}.Summary()
	assert.Equal(t, cover, article.ImageURL)
	assert.Empty(t, article.Description)
}
