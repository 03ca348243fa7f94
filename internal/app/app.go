// Package app wires configuration, stores, optional infrastructure, and the
// HTTP server into a runnable storefront process.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/raincoat98/lumina/internal/cart"
	cartredis "github.com/raincoat98/lumina/internal/cart/redis"
	"github.com/raincoat98/lumina/internal/catalog"
	"github.com/raincoat98/lumina/internal/config"
	"github.com/raincoat98/lumina/internal/event"
	handlerhttp "github.com/raincoat98/lumina/internal/handler/http"
	"github.com/raincoat98/lumina/internal/wishlist"
	"github.com/raincoat98/lumina/pkg/health"
	"github.com/raincoat98/lumina/pkg/kafka"
	"github.com/raincoat98/lumina/pkg/middleware"
)

// App is the assembled storefront.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	server   *http.Server
	carts    *cart.Store
	redis    *redis.Client
	producer *kafka.Producer
}

// New builds the application from configuration. Redis and Kafka are both
// optional; the storefront serves from memory alone when they are disabled.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	healthHandler := health.NewHandler()

	var producer *kafka.Producer
	var events *event.Producer
	if cfg.KafkaEnabled {
		producer = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		events = event.NewProducer(producer, logger)
		healthHandler.Register("kafka", producer.Ping)
		logger.Info("kafka event publishing enabled", slog.Any("brokers", cfg.KafkaBrokers))
	}

	var redisClient *redis.Client
	var cartRepo cart.Repository
	if cfg.CartSyncEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		repo := cartredis.NewRepository(redisClient, cfg.CartTTL(), logger)
		cartRepo = repo
		healthHandler.Register("redis", repo.Ping)
		logger.Info("cart persistence enabled", slog.String("addr", cfg.RedisAddr))
	}

	catalogStore := catalog.NewStore(logger, events)
	if cfg.SeedCatalog {
		if err := catalog.Seed(ctx, catalogStore); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		logger.Info("catalog seeded", slog.Int("products", catalogStore.Stats().TotalProducts))
	}

	cartStore := cart.NewStore(logger, cartRepo, events)
	wishlistStore := wishlist.NewStore()

	router := handlerhttp.NewRouter(handlerhttp.RouterConfig{
		Catalog:   catalogStore,
		Carts:     cartStore,
		Wishlists: wishlistStore,
		Health:    healthHandler,
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.CORSOrigins,
			Environment:    cfg.Environment,
		},
		Logger: logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		cfg:      cfg,
		logger:   logger,
		server:   server,
		carts:    cartStore,
		redis:    redisClient,
		producer: producer,
	}, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully. The
// cart sync consumer runs alongside the server when persistence is enabled.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.CartSyncEnabled {
		go func() {
			if err := a.carts.Run(ctx); err != nil && ctx.Err() == nil {
				a.logger.Error("cart sync consumer stopped", slog.String("error", err.Error()))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http shutdown failed", slog.String("error", err.Error()))
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close failed", slog.String("error", err.Error()))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close failed", slog.String("error", err.Error()))
		}
	}
	return nil
}
