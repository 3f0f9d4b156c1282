// Package settings provides the store settings page.
package settings

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
)

// SetupRoutes configures routes for the settings feature.
func SetupRoutes(router chi.Router, deps *common.Deps) error {
	handlers := NewHandlers(deps)

	router.Route("/{storeId}/settings", func(r chi.Router) {
		r.Use(deps.RequireStore)
		r.Get("/", handlers.SettingsPage)
		r.Post("/", handlers.Submit)
		r.Post("/delete", handlers.Delete)
	})

	return nil
}
