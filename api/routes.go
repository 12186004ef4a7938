package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the health check and the tenant-scoped matching endpoints
func setupRoutes(r chi.Router, handlers *routeHandlers, tenants tenantMiddleware) {
	r.Get("/healthz", handlers.healthHandler.health())

	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(tenants.requireTenant)

		r.Get("/match/*", handlers.matchHandler.matchPath())
		r.Get("/similar/{kind}/{entityID}", handlers.matchHandler.similar())

		r.Get("/related", handlers.contentHandler.related())
		r.Get("/entities/{kind}/{entityID}/tags", handlers.contentHandler.entityTags())

		r.Get("/tags", handlers.catalogHandler.listTags())
		r.Get("/weights", handlers.catalogHandler.weights())
	})
}
