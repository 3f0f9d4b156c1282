// Package signin provides the sign-in page and sign-out action.
package signin

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
)

// SetupRoutes configures routes for the sign-in feature.
func SetupRoutes(router chi.Router, deps *common.Deps, sessions *auth.SessionResolver) error {
	handlers := NewHandlers(deps, sessions)

	router.Get("/sign-in", handlers.SignInPage)
	router.Post("/sign-in", handlers.SignIn)
	router.Post("/sign-out", handlers.SignOut)

	return nil
}
