package api

import (
	"time"

	"github.com/renecastillotv/clic-api-neon-sub000/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(engine *services.Engine, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		healthHandler:  newHealthHandler(startupTime),
		matchHandler:   newMatchHandler(engine),
		contentHandler: newContentHandler(engine),
		catalogHandler: newCatalogHandler(engine),
	}
}
