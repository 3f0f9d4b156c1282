package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/shopdash/pkg/core"
)

// BillboardRequest is the body of billboard create and update calls.
type BillboardRequest struct {
	Label    string `json:"label"`
	ImageURL string `json:"imageUrl"`
}

func (req BillboardRequest) validate() string {
	switch {
	case strings.TrimSpace(req.Label) == "":
		return "Label is required"
	case strings.TrimSpace(req.ImageURL) == "":
		return "Image URL is required"
	}
	return ""
}

// ListBillboards returns the billboards of a store. It is public.
func (h *Handlers) ListBillboards(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListBillboards(r.Context(), chi.URLParam(r, "storeId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nonNil(list))
}

// GetBillboard returns one billboard. It is public.
func (h *Handlers) GetBillboard(w http.ResponseWriter, r *http.Request) {
	b, err := h.repo.GetBillboard(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "billboardId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

// CreateBillboard adds a billboard to a store of the authenticated user.
func (h *Handlers) CreateBillboard(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedStore(w, r)
	if !ok {
		return
	}

	var req BillboardRequest
	if err := decode(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	b := &core.Billboard{StoreID: st.ID, Label: strings.TrimSpace(req.Label), ImageURL: strings.TrimSpace(req.ImageURL)}
	if err := h.repo.CreateBillboard(r.Context(), b); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.changed(st.ID)
	h.writeJSON(w, http.StatusOK, b)
}

// UpdateBillboard replaces label and image of a billboard.
func (h *Handlers) UpdateBillboard(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedStore(w, r)
	if !ok {
		return
	}

	var req BillboardRequest
	if err := decode(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	b, err := h.repo.GetBillboard(r.Context(), st.ID, chi.URLParam(r, "billboardId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	b.Label = strings.TrimSpace(req.Label)
	b.ImageURL = strings.TrimSpace(req.ImageURL)
	if err := h.repo.UpdateBillboard(r.Context(), b); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.changed(st.ID)
	h.writeJSON(w, http.StatusOK, b)
}

// DeleteBillboard removes a billboard no category uses.
func (h *Handlers) DeleteBillboard(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedStore(w, r)
	if !ok {
		return
	}

	b, err := h.repo.GetBillboard(r.Context(), st.ID, chi.URLParam(r, "billboardId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.repo.DeleteBillboard(r.Context(), st.ID, b.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.changed(st.ID)
	h.writeJSON(w, http.StatusOK, b)
}
