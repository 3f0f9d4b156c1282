// Package home provides the setup page, the store-creation modal and the
// store overview.
package home

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
)

// SetupRoutes configures routes for the home feature.
func SetupRoutes(router chi.Router, deps *common.Deps) error {
	handlers := NewHandlers(deps)

	router.Get("/", handlers.SetupPage)
	router.Post("/stores", handlers.CreateStore)

	router.With(deps.RequireStore).Get("/{storeId}", handlers.OverviewPage)
	router.With(deps.RequireStore).Get("/{storeId}/updates", handlers.OverviewUpdates)

	return nil
}
