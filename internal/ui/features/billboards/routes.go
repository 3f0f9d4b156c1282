// Package billboards provides the billboard list and form pages.
package billboards

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
)

// SetupRoutes configures routes for the billboards feature.
func SetupRoutes(router chi.Router, deps *common.Deps) error {
	handlers := NewHandlers(deps)

	router.Route("/{storeId}/billboards", func(r chi.Router) {
		r.Use(deps.RequireStore)
		r.Get("/", handlers.ListPage)
		r.Get("/updates", handlers.ListUpdates)
		r.Get("/{billboardId}", handlers.FormPage)
		r.Post("/{billboardId}", handlers.Submit)
		r.Post("/{billboardId}/delete", handlers.Delete)
	})

	return nil
}
