package api

import (
	"net/http"
	"strings"
)

// StoreRequest is the body of store create and rename calls.
type StoreRequest struct {
	Name string `json:"name"`
}

// ListStores returns the stores of the authenticated user.
func (h *Handlers) ListStores(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	stores, err := h.repo.ListStores(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nonNil(stores))
}

// CreateStore creates a store owned by the authenticated user.
func (h *Handlers) CreateStore(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req StoreRequest
	if err := decode(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	st, err := h.repo.CreateStore(r.Context(), userID, name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("store created", "store_id", st.ID, "user_id", userID)
	h.writeJSON(w, http.StatusOK, st)
}

// GetStore returns a store of the authenticated user.
func (h *Handlers) GetStore(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedStore(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, st)
}

// UpdateStore renames a store.
func (h *Handlers) UpdateStore(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedStore(w, r)
	if !ok {
		return
	}

	var req StoreRequest
	if err := decode(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	updated, err := h.repo.RenameStore(r.Context(), st.ID, name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.changed(st.ID)
	h.writeJSON(w, http.StatusOK, updated)
}

// DeleteStore removes an empty store.
func (h *Handlers) DeleteStore(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedStore(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeleteStore(r.Context(), st.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("store deleted", "store_id", st.ID)
	h.changed(st.ID)
	h.writeJSON(w, http.StatusOK, st)
}

// nonNil keeps empty lists encoding as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
