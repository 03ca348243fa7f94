package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raincoat98/lumina/internal/cart"
	"github.com/raincoat98/lumina/internal/catalog"
	"github.com/raincoat98/lumina/internal/wishlist"
	"github.com/raincoat98/lumina/pkg/health"
	"github.com/raincoat98/lumina/pkg/middleware"
)

type testEnv struct {
	router  http.Handler
	catalog *catalog.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	catalogStore := catalog.NewStore(logger, nil)
	require.NoError(t, catalog.Seed(context.Background(), catalogStore))

	router := NewRouter(RouterConfig{
		Catalog:   catalogStore,
		Carts:     cart.NewStore(logger, nil, nil),
		Wishlists: wishlist.NewStore(),
		Health:    health.NewHandler(),
		CORS:      middleware.DefaultCORSConfig(),
		Logger:    logger,
	})
	return &testEnv{router: router, catalog: catalogStore}
}

func (e *testEnv) do(t *testing.T, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func (e *testEnv) anyProduct(t *testing.T) *catalog.Product {
	t.Helper()
	all := e.catalog.List(false)
	require.NotEmpty(t, all)
	return all[0]
}

func TestListProducts_PaginatedEnvelope(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/api/v1/products?per_page=3", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Data       []catalog.Product `json:"data"`
		TotalCount int               `json:"total_count"`
		Page       int               `json:"page"`
		TotalPages int               `json:"total_pages"`
		HasNext    bool              `json:"has_next"`
	}
	decodeData(t, rec, &page)
	assert.Len(t, page.Data, 3)
	assert.Equal(t, 1, page.Page)
	assert.True(t, page.HasNext)
	assert.Greater(t, page.TotalCount, 3)
}

func TestListProducts_FilterAndSort(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/api/v1/products?category=상의&sort=price-low", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Data []catalog.Product `json:"data"`
	}
	decodeData(t, rec, &page)
	require.NotEmpty(t, page.Data)
	for i, p := range page.Data {
		assert.Equal(t, "top", p.Category)
		if i > 0 {
			assert.GreaterOrEqual(t, p.Price, page.Data[i-1].Price)
		}
	}
}

func TestListProducts_PageBeyondEndIsEmpty(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/api/v1/products?page=99", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Data       []catalog.Product `json:"data"`
		TotalCount int               `json:"total_count"`
	}
	decodeData(t, rec, &page)
	assert.Empty(t, page.Data)
	assert.Greater(t, page.TotalCount, 0)
}

func TestGetProduct(t *testing.T) {
	e := newTestEnv(t)
	p := e.anyProduct(t)

	rec := e.do(t, http.MethodGet, "/api/v1/products/"+p.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got catalog.Product
	decodeData(t, rec, &got)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Name, got.Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/api/v1/products/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestGetVariant(t *testing.T) {
	e := newTestEnv(t)
	p := e.anyProduct(t)
	require.NotEmpty(t, p.Colors)
	require.NotEmpty(t, p.Sizes)

	path := fmt.Sprintf("/api/v1/products/%s/variants/%s/%s", p.ID, p.Colors[0], p.Sizes[0])
	rec := e.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var v VariantResponse
	decodeData(t, rec, &v)
	assert.Equal(t, p.ID, v.ProductID)
	assert.Equal(t, p.VariantStock(p.Colors[0], p.Sizes[0]), v.Stock)
	assert.True(t, v.Available)
}

func TestCreateProduct(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/v1/products", "", map[string]any{
		"name":     "Garment Dyed Crewneck",
		"price":    55000,
		"category": "top",
		"sizes":    []string{"M", "L"},
		"colors":   []string{"Washed Black"},
		"is_active": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got catalog.Product
	decodeData(t, rec, &got)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "garment-dyed-crewneck", got.Slug)
}

func TestCreateProduct_PricingViolationRejected(t *testing.T) {
	e := newTestEnv(t)
	before := len(e.catalog.List(true))

	rec := e.do(t, http.MethodPost, "/api/v1/products", "", map[string]any{
		"name":       "Mispriced Jacket",
		"price":      50000,
		"sale_price": 60000,
		"category":   "outer",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Len(t, e.catalog.List(true), before)
}

func TestCreateProduct_MissingNameFailsValidation(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodPost, "/api/v1/products", "", map[string]any{
		"price":    10000,
		"category": "top",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProduct(t *testing.T) {
	e := newTestEnv(t)
	p := e.anyProduct(t)

	rec := e.do(t, http.MethodPut, "/api/v1/products/"+p.ID, "", map[string]any{
		"price": 123000,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var got catalog.Product
	decodeData(t, rec, &got)
	assert.Equal(t, int64(123000), got.Price)
	assert.Equal(t, p.Name, got.Name)
}

func TestDeleteProduct(t *testing.T) {
	e := newTestEnv(t)
	p := e.anyProduct(t)

	rec := e.do(t, http.MethodDelete, "/api/v1/products/"+p.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/products/"+p.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartFlow(t *testing.T) {
	e := newTestEnv(t)
	p := e.anyProduct(t)
	addBody := map[string]any{"product_id": p.ID, "size": p.Sizes[0], "color": p.Colors[0]}

	// Two identical adds merge into one line with quantity 2.
	rec := e.do(t, http.MethodPost, "/api/v1/cart/items", "sess-a", addBody)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodPost, "/api/v1/cart/items", "sess-a", addBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Items     []cart.Item `json:"items"`
		Total     int64       `json:"total"`
		ItemCount int         `json:"item_count"`
	}
	decodeData(t, rec, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, p.EffectivePrice(), view.Items[0].Price)
	assert.Equal(t, p.EffectivePrice()*2, view.Total)

	// Setting quantity back to 1 leaves one line totaling the unit price.
	rec = e.do(t, http.MethodPut, "/api/v1/cart/items/"+p.ID, "sess-a", map[string]any{
		"size": p.Sizes[0], "color": p.Colors[0], "quantity": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
	assert.Equal(t, p.EffectivePrice(), view.Total)

	// Quantity zero removes the line.
	rec = e.do(t, http.MethodPut, "/api/v1/cart/items/"+p.ID, "sess-a", map[string]any{
		"size": p.Sizes[0], "color": p.Colors[0], "quantity": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &view)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.ItemCount)
}

func TestCart_RemoveViaQueryParams(t *testing.T) {
	e := newTestEnv(t)
	p := e.anyProduct(t)

	rec := e.do(t, http.MethodPost, "/api/v1/cart/items", "sess-a", map[string]any{
		"product_id": p.ID, "size": p.Sizes[0], "color": p.Colors[0],
	})
	require.Equal(t, http.StatusOK, rec.Code)

	path := fmt.Sprintf("/api/v1/cart/items/%s?size=%s&color=%s", p.ID, p.Sizes[0], p.Colors[0])
	rec = e.do(t, http.MethodDelete, path, "sess-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Items []cart.Item `json:"items"`
	}
	decodeData(t, rec, &view)
	assert.Empty(t, view.Items)
}

func TestCart_UnknownProductRejected(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodPost, "/api/v1/cart/items", "sess-a", map[string]any{
		"product_id": "ghost", "size": "M", "color": "Black",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCart_SessionsIsolatedByHeader(t *testing.T) {
	e := newTestEnv(t)
	p := e.anyProduct(t)

	rec := e.do(t, http.MethodPost, "/api/v1/cart/items", "sess-a", map[string]any{
		"product_id": p.ID, "size": p.Sizes[0], "color": p.Colors[0],
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/cart", "sess-b", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Items []cart.Item `json:"items"`
	}
	decodeData(t, rec, &view)
	assert.Empty(t, view.Items)
}

func TestWishlistToggle(t *testing.T) {
	e := newTestEnv(t)
	p := e.anyProduct(t)
	body := map[string]any{"product_id": p.ID}

	rec := e.do(t, http.MethodPost, "/api/v1/wishlist/toggle", "sess-a", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled struct {
		InWishlist bool `json:"in_wishlist"`
	}
	decodeData(t, rec, &toggled)
	assert.True(t, toggled.InWishlist)

	rec = e.do(t, http.MethodGet, "/api/v1/wishlist", "sess-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Entries []wishlist.Entry `json:"entries"`
		Count   int              `json:"count"`
	}
	decodeData(t, rec, &list)
	assert.Equal(t, 1, list.Count)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, p.ID, list.Entries[0].ProductID)

	rec = e.do(t, http.MethodPost, "/api/v1/wishlist/toggle", "sess-a", body)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &toggled)
	assert.False(t, toggled.InWishlist)
}

func TestWishlistRemove(t *testing.T) {
	e := newTestEnv(t)
	p := e.anyProduct(t)

	rec := e.do(t, http.MethodPost, "/api/v1/wishlist/toggle", "sess-a", map[string]any{"product_id": p.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/v1/wishlist/"+p.ID, "sess-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/v1/wishlist/"+p.ID, "sess-a", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStats(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/api/v1/products/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var st catalog.Stats
	decodeData(t, rec, &st)
	assert.Greater(t, st.TotalProducts, 0)
	assert.Greater(t, st.TotalStock, 0)
	assert.Greater(t, st.InventoryValue, int64(0))
}

func TestHealthEndpoints(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContentTypeEnforced(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
