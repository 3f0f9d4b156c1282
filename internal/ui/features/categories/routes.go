// Package categories provides the category list and form pages.
package categories

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
)

// SetupRoutes configures routes for the categories feature.
func SetupRoutes(router chi.Router, deps *common.Deps) error {
	handlers := NewHandlers(deps)

	router.Route("/{storeId}/categories", func(r chi.Router) {
		r.Use(deps.RequireStore)
		r.Get("/", handlers.ListPage)
		r.Get("/updates", handlers.ListUpdates)
		r.Get("/{categoryId}", handlers.FormPage)
		r.Post("/{categoryId}", handlers.Submit)
		r.Post("/{categoryId}/delete", handlers.Delete)
	})

	return nil
}
