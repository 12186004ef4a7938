package services

import (
	"context"
	"strings"

	"github.com/renecastillotv/clic-api-neon-sub000/errs"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeSegment lower-cases, trims and NFC-normalizes one path segment.
func NormalizeSegment(segment string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(segment)))
}

// CanonicalLanguage reduces a language tag to its base language ("es-DO" -> "es").
func CanonicalLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(lang)
	}
	base, _ := tag.Base()
	return base.String()
}

// ResolveTags returns the tenant's active tags named by segments. A segment matches a tag
// when it equals the slug, the alias in lang, or the alias in the default language.
// Segments that match nothing are dropped. The result has no meaningful order.
func (e *Engine) ResolveTags(ctx context.Context, segments []string, tenantID, lang string) ([]models.Tag, error) {
	values := normalizeSegments(segments)
	if len(values) == 0 {
		return []models.Tag{}, nil
	}

	langs := e.lookupLanguages(lang)
	candidates, err := e.tags.FindActiveBySlugsOrAliases(ctx, tenantID, values, langs)
	if err != nil {
		return nil, errs.NewStoreAccessError("resolve", "tags", err)
	}

	wanted := make(map[string]struct{}, len(values))
	for _, v := range values {
		wanted[v] = struct{}{}
	}

	resolved := make([]models.Tag, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, tag := range candidates {
		if !tag.Active || tag.TenantID != tenantID {
			continue
		}
		if _, dup := seen[tag.ID.String()]; dup {
			continue
		}
		if !matchesAny(tag, wanted, langs) {
			continue
		}
		seen[tag.ID.String()] = struct{}{}
		resolved = append(resolved, tag)
	}
	return resolved, nil
}

// lookupLanguages is the requested language followed by the default one, deduplicated.
func (e *Engine) lookupLanguages(lang string) []string {
	requested := CanonicalLanguage(lang)
	switch {
	case requested == "" || requested == e.defaultLanguage:
		return []string{e.defaultLanguage}
	case e.defaultLanguage == "":
		return []string{requested}
	}
	return []string{requested, e.defaultLanguage}
}

func matchesAny(tag models.Tag, wanted map[string]struct{}, langs []string) bool {
	if _, ok := wanted[NormalizeSegment(tag.Slug)]; ok {
		return true
	}
	for _, lang := range langs {
		alias := tag.Alias(lang)
		if alias == "" {
			continue
		}
		if _, ok := wanted[NormalizeSegment(alias)]; ok {
			return true
		}
	}
	return false
}

func normalizeSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	seen := make(map[string]struct{}, len(segments))
	for _, s := range segments {
		s = NormalizeSegment(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
