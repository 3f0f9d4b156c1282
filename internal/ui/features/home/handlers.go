package home

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/forms"
	"github.com/leapstack-labs/shopdash/internal/navbar"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	deps *common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps *common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// SetupPage sends users with stores to their first store and opens the store
// modal for users without one.
func (h *Handlers) SetupPage(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserFromContext(r.Context())
	nb, err := navbar.Resolve(r.Context(), userID, h.deps.Repo, "", r.URL.Path)
	if errors.Is(err, navbar.ErrUnauthenticated) {
		http.Redirect(w, r, navbar.SignInPath, http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(nb.Stores) > 0 {
		http.Redirect(w, r, forms.StorePath(nb.Stores[0].ID), http.StatusSeeOther)
		return
	}

	form := forms.NewStoreModal(h.deps.API, nil)
	data := h.deps.PageData(w, r, "Create store", "")
	h.deps.Render(w, r, components.Page(data, StoreModal(form)))
}

// CreateStore is the datastar action of the store modal.
func (h *Handlers) CreateStore(w http.ResponseWriter, r *http.Request) {
	var values forms.StoreValues
	if err := datastar.ReadSignals(r, &values); err != nil {
		h.deps.FailAction(w, r, err)
		return
	}

	rec := &formflow.Recorder{}
	form := forms.NewStoreModal(h.deps.API, rec)
	if !common.Fill(h.deps, w, r, form, values) {
		return
	}
	if err := form.Submit(r.Context()); err != nil {
		h.deps.Logger.Debug("store modal submit failed", "error", err)
	}
	h.deps.Finish(w, r, rec, StoreModal(form), nil)
}

// OverviewPage renders the store overview.
func (h *Handlers) OverviewPage(w http.ResponseWriter, r *http.Request) {
	view, err := h.overview(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	storeID := chi.URLParam(r, "storeId")
	data := h.deps.PageData(w, r, "Overview", "/"+storeID+"/updates")
	h.deps.Render(w, r, components.Page(data, view))
}

// OverviewUpdates streams overview re-renders when the store changes.
func (h *Handlers) OverviewUpdates(w http.ResponseWriter, r *http.Request) {
	h.deps.ServeUpdates(w, r, h.overview)
}

func (h *Handlers) overview(r *http.Request) (templ.Component, error) {
	nb := common.NavbarFromContext(r.Context())
	counts, err := h.deps.Repo.CountEntities(r.Context(), nb.Active.ID)
	if err != nil {
		return nil, err
	}
	return Overview(nb.Active, counts), nil
}
