package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raincoat98/lumina/internal/cart"
	"github.com/raincoat98/lumina/internal/catalog"
	"github.com/raincoat98/lumina/pkg/httputil"
	"github.com/raincoat98/lumina/pkg/validator"
)

// CartHandler serves the per-session cart endpoints. It enriches add
// requests from the catalog so lines carry a price snapshot captured at
// add time.
type CartHandler struct {
	carts   *cart.Store
	catalog *catalog.Store
	logger  *slog.Logger
}

// NewCartHandler creates a cart HTTP handler.
func NewCartHandler(carts *cart.Store, cat *catalog.Store, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, catalog: cat, logger: logger}
}

// AddItemRequest is the JSON body for adding a line to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color" validate:"required"`
}

// UpdateQuantityRequest is the JSON body for setting a line's quantity.
// Size and color complete the line identity.
type UpdateQuantityRequest struct {
	Size     string `json:"size" validate:"required"`
	Color    string `json:"color" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// cartView is the cart plus its derived totals, shaped for the response.
type cartView struct {
	SessionID string      `json:"session_id"`
	Items     []cart.Item `json:"items"`
	Total     int64       `json:"total"`
	ItemCount int         `json:"item_count"`
}

func viewOf(c *cart.Cart) cartView {
	return cartView{
		SessionID: c.SessionID,
		Items:     c.Items,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}

// Get handles GET /api/v1/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(r.Context(), SessionID(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: viewOf(c)})
}

// AddItem handles POST /api/v1/cart/items. The product must exist at add
// time; its effective price, name, and primary image are captured onto the
// new line and never updated afterwards.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.catalog.Get(req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	in := cart.AddInput{
		ProductID: p.ID,
		Size:      req.Size,
		Color:     req.Color,
		Name:      p.Name,
		Price:     p.EffectivePrice(),
	}
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		in.OriginalPrice = &v
	}
	if len(p.Images) > 0 {
		in.Image = p.Images[0]
	}

	c, err := h.carts.AddItem(r.Context(), SessionID(r.Context()), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: viewOf(c)})
}

// UpdateQuantity handles PUT /api/v1/cart/items/{productId}. A quantity of
// zero removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	c, err := h.carts.UpdateQuantity(r.Context(), SessionID(r.Context()),
		chi.URLParam(r, "productId"), req.Size, req.Color, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: viewOf(c)})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}. Size and color
// arrive as query params since DELETE carries no body.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	size := r.URL.Query().Get("size")
	color := r.URL.Query().Get("color")

	c, err := h.carts.RemoveItem(r.Context(), SessionID(r.Context()),
		chi.URLParam(r, "productId"), size, color)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: viewOf(c)})
}

// Clear handles DELETE /api/v1/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Clear(r.Context(), SessionID(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: viewOf(c)})
}
