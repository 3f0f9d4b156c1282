package products

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/forms"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// Handlers provides HTTP handlers for the products feature.
type Handlers struct {
	deps *common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps *common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// ListPage renders the product list.
func (h *Handlers) ListPage(w http.ResponseWriter, r *http.Request) {
	view, err := h.list(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	storeID := chi.URLParam(r, "storeId")
	data := h.deps.PageData(w, r, "Products", forms.ProductsPath(storeID)+"/updates")
	h.deps.Render(w, r, components.Page(data, view))
}

// ListUpdates streams list re-renders when the store changes.
func (h *Handlers) ListUpdates(w http.ResponseWriter, r *http.Request) {
	h.deps.ServeUpdates(w, r, h.list)
}

func (h *Handlers) list(r *http.Request) (templ.Component, error) {
	storeID := chi.URLParam(r, "storeId")
	items, err := h.deps.Repo.ListProducts(r.Context(), storeID, core.ProductFilter{IncludeArchived: true})
	if err != nil {
		return nil, err
	}
	categories, err := h.deps.Repo.ListCategories(r.Context(), storeID)
	if err != nil {
		return nil, err
	}
	return List(storeID, h.deps.OriginFor(r), items, categories), nil
}

func (h *Handlers) load(r *http.Request) (*core.Product, error) {
	return common.LoadForEdit(r, "productId", func(storeID, id string) (*core.Product, error) {
		return h.deps.Repo.GetProduct(r.Context(), storeID, id)
	})
}

// FormPage renders the product form; the id "new" opens it in create mode.
func (h *Handlers) FormPage(w http.ResponseWriter, r *http.Request) {
	p, err := h.load(r)
	if common.NotFound(err) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	storeID := chi.URLParam(r, "storeId")
	categories, err := h.deps.Repo.ListCategories(r.Context(), storeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	form := forms.NewProductForm(h.deps.API, storeID, p, nil)
	data := h.deps.PageData(w, r, form.Labels().Title, "")
	h.deps.Render(w, r, components.Page(data, Form(storeID, chi.URLParam(r, "productId"), form, categories)))
}

// Submit is the datastar action of the product form.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	var values forms.ProductValues
	if err := datastar.ReadSignals(r, &values); err != nil {
		h.deps.FailAction(w, r, err)
		return
	}
	p, err := h.load(r)
	if err != nil {
		h.deps.FailAction(w, r, err)
		return
	}

	storeID := chi.URLParam(r, "storeId")
	categories, err := h.deps.Repo.ListCategories(r.Context(), storeID)
	if err != nil {
		h.deps.FailAction(w, r, err)
		return
	}

	rec := &formflow.Recorder{}
	form := forms.NewProductForm(h.deps.API, storeID, p, rec)
	if !common.Fill(h.deps, w, r, form, values) {
		return
	}
	if err := form.Submit(r.Context()); err != nil {
		h.deps.Logger.Debug("product submit failed", "store_id", storeID, "error", err)
	}
	h.deps.Finish(w, r, rec, Form(storeID, chi.URLParam(r, "productId"), form, categories), nil)
}

// Delete is the confirm action of the product delete modal.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := h.load(r)
	if err == nil && p == nil {
		err = formflow.ErrDeleteUnavailable
	}
	if err != nil {
		h.deps.FailAction(w, r, err)
		return
	}

	rec := &formflow.Recorder{}
	form := forms.NewProductForm(h.deps.API, p.StoreID, p, rec)
	if err := form.OpenConfirm(); err != nil {
		h.deps.FailAction(w, r, err)
		return
	}
	if err := form.ConfirmDelete(r.Context()); err != nil {
		h.deps.Logger.Debug("product delete failed", "product_id", p.ID, "error", err)
	}
	h.deps.Finish(w, r, rec, nil, map[string]any{"confirmOpen": false})
}
