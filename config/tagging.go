package config

import "strings"

// Defaults for the tag matching engine. Each can be overridden through the environment.
const (
	DefaultLanguage             = "es"
	DefaultHydrationConcurrency = 8
)

var (
	DefaultSupportedLanguages       = []string{"es", "en"}
	DefaultListingAvailableStatuses = []string{"active", "available"}
)

// Tagging groups the settings read once at startup by the matching engine.
type Tagging struct {
	DefaultLanguage          string
	SupportedLanguages       []string
	ListingAvailableStatuses []string
	HydrationConcurrency     int
	// WeightOverrides maps a tag kind (e.g. "property-type") to a replacement weight.
	WeightOverrides map[string]float64
}

const weightPrefix = "TAG_WEIGHT_"

func NewTagging(c map[string]string) Tagging {
	t := Tagging{
		DefaultLanguage:          strings.ToLower(GetString(c, "DEFAULT_LANGUAGE", DefaultLanguage)),
		SupportedLanguages:       GetList(c, "SUPPORTED_LANGUAGES", DefaultSupportedLanguages),
		ListingAvailableStatuses: GetList(c, "LISTING_AVAILABLE_STATUSES", DefaultListingAvailableStatuses),
		HydrationConcurrency:     GetInt(c, "HYDRATION_CONCURRENCY", DefaultHydrationConcurrency),
		WeightOverrides:          map[string]float64{},
	}
	if t.HydrationConcurrency < 1 {
		t.HydrationConcurrency = 1
	}

	for key := range c {
		if !strings.HasPrefix(key, weightPrefix) {
			continue
		}
		// TAG_WEIGHT_PROPERTY_TYPE -> property-type
		kind := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, weightPrefix)), "_", "-")
		if w := GetFloat(c, key, -1); w > 0 {
			t.WeightOverrides[kind] = w
		}
	}
	return t
}
