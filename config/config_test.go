package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":    "9090",
		"BAD_INT": "nine",
		"EMPTY":   "",
		"RATIO":   " 1.25 ",
		"LIST":    " es, en ,, fr ",
		"BLANKS":  " , ",
	}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))

	assert.Equal(t, 9090, GetInt(c, "PORT", 1))
	assert.Equal(t, 1, GetInt(c, "BAD_INT", 1))

	assert.Equal(t, 1.25, GetFloat(c, "RATIO", 0))
	assert.Equal(t, 0.5, GetFloat(c, "MISSING", 0.5))

	assert.Equal(t, []string{"es", "en", "fr"}, GetList(c, "LIST", nil))
	assert.Equal(t, []string{"x"}, GetList(c, "BLANKS", []string{"x"}))
}

func TestNewTagging_Defaults(t *testing.T) {
	tagging := NewTagging(nil)

	assert.Equal(t, DefaultLanguage, tagging.DefaultLanguage)
	assert.Equal(t, DefaultSupportedLanguages, tagging.SupportedLanguages)
	assert.Equal(t, DefaultListingAvailableStatuses, tagging.ListingAvailableStatuses)
	assert.Equal(t, DefaultHydrationConcurrency, tagging.HydrationConcurrency)
	assert.Empty(t, tagging.WeightOverrides)
}

func TestNewTagging_Overrides(t *testing.T) {
	tagging := NewTagging(map[string]string{
		"DEFAULT_LANGUAGE":           "EN",
		"LISTING_AVAILABLE_STATUSES": "published",
		"HYDRATION_CONCURRENCY":      "0",
		"TAG_WEIGHT_PROPERTY_TYPE":   "2.5",
		"TAG_WEIGHT_AMENITY":         "nope",
		"TAG_WEIGHT_INTERNAL":        "-1",
	})

	assert.Equal(t, "en", tagging.DefaultLanguage)
	assert.Equal(t, []string{"published"}, tagging.ListingAvailableStatuses)
	assert.Equal(t, 1, tagging.HydrationConcurrency)
	assert.Equal(t, map[string]float64{"property-type": 2.5}, tagging.WeightOverrides)
}
