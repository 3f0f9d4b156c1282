// Package api provides the REST routes the dashboard forms talk to.
//
// Writes require an authenticated user who owns the store. Reads of
// store-scoped entities are public so a storefront can consume them.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/internal/notifier"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Handlers provides HTTP handlers for the API.
type Handlers struct {
	repo     core.Repository
	notifier *notifier.Notifier
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(repo core.Repository, notify *notifier.Notifier, logger *slog.Logger) *Handlers {
	if notify == nil {
		notify = notifier.New()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{repo: repo, notifier: notify, logger: logger}
}

// SetupRoutes registers the API under /api. The identity middleware must run
// before these handlers (see auth.Middleware).
func SetupRoutes(router chi.Router, h *Handlers) {
	router.Route("/api", func(r chi.Router) {
		r.Route("/stores", func(r chi.Router) {
			r.Get("/", h.ListStores)
			r.Post("/", h.CreateStore)
			r.Get("/{storeId}", h.GetStore)
			r.Patch("/{storeId}", h.UpdateStore)
			r.Delete("/{storeId}", h.DeleteStore)
		})

		r.Route("/{storeId}", func(r chi.Router) {
			r.Route("/billboards", func(r chi.Router) {
				r.Get("/", h.ListBillboards)
				r.Post("/", h.CreateBillboard)
				r.Get("/{billboardId}", h.GetBillboard)
				r.Patch("/{billboardId}", h.UpdateBillboard)
				r.Delete("/{billboardId}", h.DeleteBillboard)
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.ListCategories)
				r.Post("/", h.CreateCategory)
				r.Get("/{categoryId}", h.GetCategory)
				r.Patch("/{categoryId}", h.UpdateCategory)
				r.Delete("/{categoryId}", h.DeleteCategory)
			})
			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.ListProducts)
				r.Post("/", h.CreateProduct)
				r.Get("/{productId}", h.GetProduct)
				r.Patch("/{productId}", h.UpdateProduct)
				r.Delete("/{productId}", h.DeleteProduct)
			})
		})
	})
}

// NewRouter returns a standalone API router with identity resolution installed.
func NewRouter(h *Handlers, res auth.Resolver) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.Middleware(res))
	SetupRoutes(r, h)
	return r
}

// writeJSON encodes v with the given status.
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps repository errors to status codes. The body is plain text so
// clients can surface it directly.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, core.ErrConflict):
		http.Error(w, "Conflict", http.StatusConflict)
	case errors.Is(err, core.ErrForbidden):
		http.Error(w, "Unauthorized", http.StatusForbidden)
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// decode reads a JSON body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

// requireUser returns the authenticated user or writes 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

// ownedStore checks that the authenticated user owns the {storeId} store.
func (h *Handlers) ownedStore(w http.ResponseWriter, r *http.Request) (*core.Store, bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return nil, false
	}

	storeID := chi.URLParam(r, "storeId")
	if storeID == "" {
		http.Error(w, "Store id is required", http.StatusBadRequest)
		return nil, false
	}

	st, err := h.repo.GetStoreForUser(r.Context(), storeID, userID)
	if errors.Is(err, core.ErrNotFound) {
		http.Error(w, "Unauthorized", http.StatusForbidden)
		return nil, false
	}
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	return st, true
}

// changed notifies live dashboard pages of a store.
func (h *Handlers) changed(storeID string) {
	h.notifier.Broadcast(storeID)
}
