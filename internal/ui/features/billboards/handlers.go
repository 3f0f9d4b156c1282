package billboards

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

// Handlers provides HTTP handlers for the billboards feature.
type Handlers struct {
	deps *common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps *common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// ListPage renders the billboard list.
func (h *Handlers) ListPage(w http.ResponseWriter, r *http.Request) {
	view, err := h.list(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	storeID := chi.URLParam(r, "storeId")
	data := h.deps.PageData(w, r, "Billboards", forms.BillboardsPath(storeID)+"/updates")
	h.deps.Render(w, r, components.Page(data, view))
}

// ListUpdates streams list re-renders when the store changes.
func (h *Handlers) ListUpdates(w http.ResponseWriter, r *http.Request) {
	h.deps.ServeUpdates(w, r, h.list)
}

func (h *Handlers) list(r *http.Request) (templ.Component, error) {
	storeID := chi.URLParam(r, "storeId")
	items, err := h.deps.Repo.ListBillboards(r.Context(), storeID)
	if err != nil {
		return nil, err
	}
	return List(storeID, h.deps.OriginFor(r), items), nil
}

func (h *Handlers) load(r *http.Request) (*core.Billboard, error) {
	return common.LoadForEdit(r, "billboardId", func(storeID, id string) (*core.Billboard, error) {
		return h.deps.Repo.GetBillboard(r.Context(), storeID, id)
	})
}

// FormPage renders the billboard form; the id "new" opens it in create mode.
func (h *Handlers) FormPage(w http.ResponseWriter, r *http.Request) {
	b, err := h.load(r)
	if common.NotFound(err) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	storeID := chi.URLParam(r, "storeId")
	form := forms.NewBillboardForm(h.deps.API, storeID, b, nil)
	data := h.deps.PageData(w, r, form.Labels().Title, "")
	h.deps.Render(w, r, components.Page(data, Form(storeID, chi.URLParam(r, "billboardId"), form)))
}

// Submit is the datastar action of the billboard form.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	var values forms.BillboardValues
	if err := datastar.ReadSignals(r, &values); err != nil {
		h.deps.FailAction(w, r, err)
		return
	}
	b, err := h.load(r)
	if err != nil {
		h.deps.FailAction(w, r, err)
		return
	}

	storeID := chi.URLParam(r, "storeId")
	rec := &formflow.Recorder{}
	form := forms.NewBillboardForm(h.deps.API, storeID, b, rec)
	if !common.Fill(h.deps, w, r, form, values) {
		return
	}
	if err := form.Submit(r.Context()); err != nil {
		h.deps.Logger.Debug("billboard submit failed", "store_id", storeID, "error", err)
	}
	h.deps.Finish(w, r, rec, Form(storeID, chi.URLParam(r, "billboardId"), form), nil)
}

// Delete is the confirm action of the billboard delete modal.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	b, err := h.load(r)
	if err == nil && b == nil {
		err = formflow.ErrDeleteUnavailable
	}
	if err != nil {
		h.deps.FailAction(w, r, err)
		return
	}

	storeID := chi.URLParam(r, "storeId")
	rec := &formflow.Recorder{}
	form := forms.NewBillboardForm(h.deps.API, storeID, b, rec)
	if err := form.OpenConfirm(); err != nil {
		h.deps.FailAction(w, r, err)
		return
	}
	if err := form.ConfirmDelete(r.Context()); err != nil {
		h.deps.Logger.Debug("billboard delete failed", "billboard_id", b.ID, "error", err)
	}
	h.deps.Finish(w, r, rec, nil, map[string]any{"confirmOpen": false})
}
