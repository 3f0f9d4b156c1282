// Package products provides the product list and form pages.
package products

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
)

// SetupRoutes configures routes for the products feature.
func SetupRoutes(router chi.Router, deps *common.Deps) error {
	handlers := NewHandlers(deps)

	router.Route("/{storeId}/products", func(r chi.Router) {
		r.Use(deps.RequireStore)
		r.Get("/", handlers.ListPage)
		r.Get("/updates", handlers.ListUpdates)
		r.Get("/{productId}", handlers.FormPage)
		r.Post("/{productId}", handlers.Submit)
		r.Post("/{productId}/delete", handlers.Delete)
	})

	return nil
}
