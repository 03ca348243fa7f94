package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raincoat98/lumina/internal/catalog"
	"github.com/raincoat98/lumina/internal/filter"
	"github.com/raincoat98/lumina/pkg/httputil"
	"github.com/raincoat98/lumina/pkg/pagination"
	"github.com/raincoat98/lumina/pkg/validator"
)

// CatalogHandler serves the product listing, detail, variant, and admin
// endpoints.
type CatalogHandler struct {
	store  *catalog.Store
	logger *slog.Logger
}

// NewCatalogHandler creates a catalog HTTP handler.
func NewCatalogHandler(store *catalog.Store, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{store: store, logger: logger}
}

// List handles GET /api/v1/products. Filter criteria and pagination both
// come from the query string; the filtered view is recomputed per request
// from a catalog snapshot.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria := filter.ParseCriteria(r)
	params := pagination.FromRequest(r)

	snapshot := h.store.List(criteria.IncludeInactive)
	matched := filter.Apply(snapshot, criteria)
	page := filter.Page(matched, params.Page, params.PerPage)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: httputil.NewPaginatedResponse(page.Items, page.TotalCount, page.Page, page.PerPage),
	})
}

// Stats handles GET /api/v1/products/stats.
func (h *CatalogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.store.Stats()})
}

// Get handles GET /api/v1/products/{id}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}

// VariantResponse reports stock and purchasability for one variant.
type VariantResponse struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Stock     int    `json:"stock"`
	Available bool   `json:"available"`
}

// Variant handles GET /api/v1/products/{id}/variants/{color}/{size}.
func (h *CatalogHandler) Variant(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	color := chi.URLParam(r, "color")
	size := chi.URLParam(r, "size")
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: VariantResponse{
		ProductID: p.ID,
		Color:     color,
		Size:      size,
		Stock:     p.VariantStock(color, size),
		Available: p.VariantAvailable(color, size),
	}})
}

// Create handles POST /api/v1/products.
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft catalog.Draft
	if err := validator.DecodeAndValidate(r, &draft); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.store.Add(r.Context(), draft)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: p})
}

// Update handles PUT /api/v1/products/{id}.
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch catalog.Patch
	if err := validator.DecodeAndValidate(r, &patch); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}

// Delete handles DELETE /api/v1/products/{id}.
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}
