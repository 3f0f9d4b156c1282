package categories

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

// Handlers provides HTTP handlers for the categories feature.
type Handlers struct {
	deps *common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps *common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// ListPage renders the category list.
func (h *Handlers) ListPage(w http.ResponseWriter, r *http.Request) {
	view, err := h.list(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	storeID := chi.URLParam(r, "storeId")
	data := h.deps.PageData(w, r, "Categories", forms.CategoriesPath(storeID)+"/updates")
	h.deps.Render(w, r, components.Page(data, view))
}

// ListUpdates streams list re-renders when the store changes.
func (h *Handlers) ListUpdates(w http.ResponseWriter, r *http.Request) {
	h.deps.ServeUpdates(w, r, h.list)
}

func (h *Handlers) list(r *http.Request) (templ.Component, error) {
	storeID := chi.URLParam(r, "storeId")
	items, err := h.deps.Repo.ListCategories(r.Context(), storeID)
	if err != nil {
		return nil, err
	}
	billboards, err := h.deps.Repo.ListBillboards(r.Context(), storeID)
	if err != nil {
		return nil, err
	}
	return List(storeID, h.deps.OriginFor(r), items, billboards), nil
}

func (h *Handlers) load(r *http.Request) (*core.Category, error) {
	return common.LoadForEdit(r, "categoryId", func(storeID, id string) (*core.Category, error) {
		return h.deps.Repo.GetCategory(r.Context(), storeID, id)
	})
}

// FormPage renders the category form; the id "new" opens it in create mode.
func (h *Handlers) FormPage(w http.ResponseWriter, r *http.Request) {
	c, err := h.load(r)
	if common.NotFound(err) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	storeID := chi.URLParam(r, "storeId")
	billboards, err := h.deps.Repo.ListBillboards(r.Context(), storeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	form := forms.NewCategoryForm(h.deps.API, storeID, c, nil)
	data := h.deps.PageData(w, r, form.Labels().Title, "")
	h.deps.Render(w, r, components.Page(data, Form(storeID, chi.URLParam(r, "categoryId"), form, billboards)))
}

// Submit is the datastar action of the category form.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	var values forms.CategoryValues
	if err := datastar.ReadSignals(r, &values); err != nil {
		h.deps.FailAction(w, r, err)
		return
	}
	c, err := h.load(r)
	if err != nil {
		h.deps.FailAction(w, r, err)
		return
	}

	storeID := chi.URLParam(r, "storeId")
	billboards, err := h.deps.Repo.ListBillboards(r.Context(), storeID)
	if err != nil {
		h.deps.FailAction(w, r, err)
		return
	}

	rec := &formflow.Recorder{}
	form := forms.NewCategoryForm(h.deps.API, storeID, c, rec)
	if !common.Fill(h.deps, w, r, form, values) {
		return
	}
	if err := form.Submit(r.Context()); err != nil {
		h.deps.Logger.Debug("category submit failed", "store_id", storeID, "error", err)
	}
	h.deps.Finish(w, r, rec, Form(storeID, chi.URLParam(r, "categoryId"), form, billboards), nil)
}

// Delete is the confirm action of the category delete modal.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	c, err := h.load(r)
	if err == nil && c == nil {
		err = formflow.ErrDeleteUnavailable
	}
	if err != nil {
		h.deps.FailAction(w, r, err)
		return
	}

	rec := &formflow.Recorder{}
	form := forms.NewCategoryForm(h.deps.API, c.StoreID, c, rec)
	if err := form.OpenConfirm(); err != nil {
		h.deps.FailAction(w, r, err)
		return
	}
	if err := form.ConfirmDelete(r.Context()); err != nil {
		h.deps.Logger.Debug("category delete failed", "category_id", c.ID, "error", err)
	}
	h.deps.Finish(w, r, rec, nil, map[string]any{"confirmOpen": false})
}
