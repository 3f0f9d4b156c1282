// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/shopdash/internal/auth"
	billboardsFeature "github.com/leapstack-labs/shopdash/internal/ui/features/billboards"
	categoriesFeature "github.com/leapstack-labs/shopdash/internal/ui/features/categories"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	homeFeature "github.com/leapstack-labs/shopdash/internal/ui/features/home"
	productsFeature "github.com/leapstack-labs/shopdash/internal/ui/features/products"
	settingsFeature "github.com/leapstack-labs/shopdash/internal/ui/features/settings"
	signinFeature "github.com/leapstack-labs/shopdash/internal/ui/features/signin"
	"github.com/leapstack-labs/shopdash/internal/ui/resources"
)

// Reloader triggers a browser reload on every page with an open /reload stream.
type Reloader struct {
	ch chan struct{}
}

// NewReloader creates a Reloader.
func NewReloader() *Reloader {
	return &Reloader{ch: make(chan struct{}, 1)}
}

// Trigger requests a reload. Pending requests are coalesced.
func (rl *Reloader) Trigger() {
	select {
	case rl.ch <- struct{}{}:
	default:
	}
}

// SetupRoutes configures all page routes. The identity middleware must
// already be installed on router.
func SetupRoutes(router chi.Router, deps *common.Deps, sessions *auth.SessionResolver, reload *Reloader) error {
	// Hot reload endpoint for dev mode
	if deps.IsDev && reload != nil {
		setupReload(router, reload)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := signinFeature.SetupRoutes(router, deps, sessions); err != nil {
		return err
	}

	if err := homeFeature.SetupRoutes(router, deps); err != nil {
		return err
	}

	if err := billboardsFeature.SetupRoutes(router, deps); err != nil {
		return err
	}

	if err := categoriesFeature.SetupRoutes(router, deps); err != nil {
		return err
	}

	if err := productsFeature.SetupRoutes(router, deps); err != nil {
		return err
	}

	if err := settingsFeature.SetupRoutes(router, deps); err != nil {
		return err
	}

	return nil
}

func setupReload(router chi.Router, reload *Reloader) {
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		send := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(send)
		select {
		case <-reload.ch:
			send()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		reload.Trigger()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
