package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raincoat98/lumina/internal/cart"
	"github.com/raincoat98/lumina/internal/catalog"
	"github.com/raincoat98/lumina/internal/wishlist"
	"github.com/raincoat98/lumina/pkg/health"
	"github.com/raincoat98/lumina/pkg/middleware"
)

// RouterConfig bundles the stores and infrastructure the router wires up.
type RouterConfig struct {
	Catalog   *catalog.Store
	Carts     *cart.Store
	Wishlists *wishlist.Store
	Health    *health.Handler
	CORS      middleware.CORSConfig
	Logger    *slog.Logger
}

// NewRouter creates the chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	catalogHandler := NewCatalogHandler(cfg.Catalog, cfg.Logger)
	cartHandler := NewCartHandler(cfg.Carts, cfg.Catalog, cfg.Logger)
	wishlistHandler := NewWishlistHandler(cfg.Wishlists, cfg.Catalog, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionFromHeader)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.List)
			r.Get("/stats", catalogHandler.Stats)
			r.Get("/{id}", catalogHandler.Get)
			r.Get("/{id}/variants/{color}/{size}", catalogHandler.Variant)

			r.Post("/", catalogHandler.Create)
			r.Put("/{id}", catalogHandler.Update)
			r.Delete("/{id}", catalogHandler.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.UpdateQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.List)
			r.Post("/toggle", wishlistHandler.Toggle)
			r.Delete("/{productId}", wishlistHandler.Remove)
		})
	})

	return r
}
