package api

import (
	"context"
	"errors"
)

type keyType string

const (
	tenantIDKey keyType = "tenantID"
	languageKey keyType = "language"
)

// ctxWithTenantID adds a tenant ID to the context
func ctxWithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// ctxWithLanguage adds the negotiated display language to the context
func ctxWithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey, lang)
}

// ctxGetTenantID retrieves a tenant ID from the context
func ctxGetTenantID(ctx context.Context) (string, error) {
	return ctxGetStringValue(ctx, tenantIDKey)
}

// ctxGetLanguage retrieves the display language from the context
func ctxGetLanguage(ctx context.Context) string {
	lang, _ := ctxGetStringValue(ctx, languageKey)
	return lang
}

// ctxGetStringValue is a helper function to retrieve string values from the context by key
func ctxGetStringValue(ctx context.Context, key keyType) (string, error) {
	if ctxValue := ctx.Value(key); ctxValue == nil {
		return "", errors.New("key not found in context")
	} else if valueAsString, ok := ctxValue.(string); !ok {
		return "", errors.New("value is not of type `string`")
	} else {
		return valueAsString, nil
	}
}
