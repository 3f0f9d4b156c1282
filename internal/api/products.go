package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/shopdash/pkg/core"
)

// ProductRequest is the body of product create and update calls.
type ProductRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	CategoryID string `json:"categoryId"`
	IsFeatured bool   `json:"isFeatured"`
	IsArchived bool   `json:"isArchived"`
}

func (req ProductRequest) validate() string {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return "Name is required"
	case req.PriceCents <= 0:
		return "Price is required"
	case req.CategoryID == "":
		return "Category id is required"
	}
	return ""
}

func (req ProductRequest) apply(p *core.Product) {
	p.Name = strings.TrimSpace(req.Name)
	p.PriceCents = req.PriceCents
	p.CategoryID = req.CategoryID
	p.IsFeatured = req.IsFeatured
	p.IsArchived = req.IsArchived
}

// ListProducts returns the products of a store. It is public and accepts the
// categoryId, isFeatured and includeArchived query parameters.
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.ProductFilter{CategoryID: q.Get("categoryId")}
	if v := q.Get("isFeatured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "isFeatured must be a boolean", http.StatusBadRequest)
			return
		}
		filter.FeaturedOnly = featured
	}
	if v := q.Get("includeArchived"); v != "" {
		archived, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "includeArchived must be a boolean", http.StatusBadRequest)
			return
		}
		filter.IncludeArchived = archived
	}

	list, err := h.repo.ListProducts(r.Context(), chi.URLParam(r, "storeId"), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nonNil(list))
}

// GetProduct returns one product. It is public.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.GetProduct(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "productId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

// CreateProduct adds a product to a category of the same store.
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedStore(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := decode(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	p := &core.Product{StoreID: st.ID}
	req.apply(p)
	if err := h.repo.CreateProduct(r.Context(), p); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.changed(st.ID)
	h.writeJSON(w, http.StatusOK, p)
}

// UpdateProduct replaces every editable field of a product.
func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedStore(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := decode(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	p, err := h.repo.GetProduct(r.Context(), st.ID, chi.URLParam(r, "productId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req.apply(p)
	if err := h.repo.UpdateProduct(r.Context(), p); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.changed(st.ID)
	h.writeJSON(w, http.StatusOK, p)
}

// DeleteProduct removes a product.
func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedStore(w, r)
	if !ok {
		return
	}

	p, err := h.repo.GetProduct(r.Context(), st.ID, chi.URLParam(r, "productId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.repo.DeleteProduct(r.Context(), st.ID, p.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.changed(st.ID)
	h.writeJSON(w, http.StatusOK, p)
}
