package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raincoat98/lumina/internal/catalog"
	"github.com/raincoat98/lumina/internal/wishlist"
	"github.com/raincoat98/lumina/pkg/httputil"
	"github.com/raincoat98/lumina/pkg/validator"
)

// WishlistHandler serves the per-session wishlist endpoints.
type WishlistHandler struct {
	wishlists *wishlist.Store
	catalog   *catalog.Store
	logger    *slog.Logger
}

// NewWishlistHandler creates a wishlist HTTP handler.
func NewWishlistHandler(wl *wishlist.Store, cat *catalog.Store, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{wishlists: wl, catalog: cat, logger: logger}
}

// ToggleRequest is the JSON body for toggling wishlist membership.
type ToggleRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// wishlistView is the session's wishlist with its count.
type wishlistView struct {
	Entries []wishlist.Entry `json:"entries"`
	Count   int              `json:"count"`
}

// List handles GET /api/v1/wishlist.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	sid := SessionID(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistView{
		Entries: h.wishlists.List(sid),
		Count:   h.wishlists.Count(sid),
	}})
}

// Toggle handles POST /api/v1/wishlist/toggle: add when absent, remove when
// present. The product must exist so its display snapshot can be captured
// on add.
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.catalog.Get(req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	in := wishlist.AddInput{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.EffectivePrice(),
		Rating:    p.Rating,
	}
	if len(p.Images) > 0 {
		in.Image = p.Images[0]
	}

	member, entry, err := h.wishlists.Toggle(SessionID(r.Context()), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	data := map[string]any{"in_wishlist": member}
	if member {
		data["entry"] = entry
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: data})
}

// Remove handles DELETE /api/v1/wishlist/{productId}.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.wishlists.RemoveByProductID(SessionID(r.Context()), chi.URLParam(r, "productId")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "removed"}})
}
