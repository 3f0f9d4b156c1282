package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/shopdash/pkg/core"
)

// CategoryRequest is the body of category create and update calls.
type CategoryRequest struct {
	Name        string `json:"name"`
	BillboardID string `json:"billboardId"`
}

func (req CategoryRequest) validate() string {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return "Name is required"
	case req.BillboardID == "":
		return "Billboard id is required"
	}
	return ""
}

// ListCategories returns the categories of a store. It is public.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListCategories(r.Context(), chi.URLParam(r, "storeId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nonNil(list))
}

// GetCategory returns one category. It is public.
func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.repo.GetCategory(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "categoryId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

// CreateCategory adds a category bound to a billboard of the same store.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedStore(w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := decode(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	c := &core.Category{StoreID: st.ID, BillboardID: req.BillboardID, Name: strings.TrimSpace(req.Name)}
	if err := h.repo.CreateCategory(r.Context(), c); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.changed(st.ID)
	h.writeJSON(w, http.StatusOK, c)
}

// UpdateCategory replaces name and billboard of a category.
func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedStore(w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := decode(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	c, err := h.repo.GetCategory(r.Context(), st.ID, chi.URLParam(r, "categoryId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c.Name = strings.TrimSpace(req.Name)
	c.BillboardID = req.BillboardID
	if err := h.repo.UpdateCategory(r.Context(), c); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.changed(st.ID)
	h.writeJSON(w, http.StatusOK, c)
}

// DeleteCategory removes a category no product uses.
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedStore(w, r)
	if !ok {
		return
	}

	c, err := h.repo.GetCategory(r.Context(), st.ID, chi.URLParam(r, "categoryId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.repo.DeleteCategory(r.Context(), st.ID, c.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.changed(st.ID)
	h.writeJSON(w, http.StatusOK, c)
}
