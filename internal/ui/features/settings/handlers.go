package settings

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/internal/forms"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
)

// Handlers provides HTTP handlers for the settings feature.
type Handlers struct {
	deps *common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps *common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// SettingsPage renders the settings form and the public API alert of the store.
func (h *Handlers) SettingsPage(w http.ResponseWriter, r *http.Request) {
	st := common.NavbarFromContext(r.Context()).Active
	form := forms.NewSettingsForm(h.deps.API, st, nil)

	data := h.deps.PageData(w, r, "Settings", "")
	h.deps.Render(w, r, components.Page(data, Settings(st.ID, h.deps.OriginFor(r), form)))
}

// Submit is the datastar action of the settings form.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	var values forms.StoreValues
	if err := datastar.ReadSignals(r, &values); err != nil {
		h.deps.FailAction(w, r, err)
		return
	}

	st := common.NavbarFromContext(r.Context()).Active
	rec := &formflow.Recorder{}
	form := forms.NewSettingsForm(h.deps.API, st, rec)
	if !common.Fill(h.deps, w, r, form, values) {
		return
	}
	if err := form.Submit(r.Context()); err != nil {
		h.deps.Logger.Debug("settings submit failed", "store_id", st.ID, "error", err)
	}
	h.deps.Finish(w, r, rec, Settings(st.ID, h.deps.OriginFor(r), form), nil)
}

// Delete is the confirm action of the store delete modal.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	st := common.NavbarFromContext(r.Context()).Active
	rec := &formflow.Recorder{}
	form := forms.NewSettingsForm(h.deps.API, st, rec)
	if err := form.OpenConfirm(); err != nil {
		h.deps.FailAction(w, r, err)
		return
	}
	if err := form.ConfirmDelete(r.Context()); err != nil {
		h.deps.Logger.Debug("store delete failed", "store_id", st.ID, "error", err)
	}
	h.deps.Finish(w, r, rec, nil, map[string]any{"confirmOpen": false})
}
