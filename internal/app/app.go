package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kaushalNeupane10/CloudBite/internal/api"
	"github.com/kaushalNeupane10/CloudBite/internal/cart"
	"github.com/kaushalNeupane10/CloudBite/internal/catalog"
	"github.com/kaushalNeupane10/CloudBite/internal/checkout"
	"github.com/kaushalNeupane10/CloudBite/internal/config"
	"github.com/kaushalNeupane10/CloudBite/internal/credstore"
	"github.com/kaushalNeupane10/CloudBite/internal/orders"
	"github.com/kaushalNeupane10/CloudBite/internal/tabsync"
	"github.com/kaushalNeupane10/CloudBite/pkg/httpclient"
)

// App wires together all dependencies of the storefront client.
type App struct {
	cfg         *config.Config
	logger      *slog.Logger
	rdb         *redis.Client
	broadcaster tabsync.Broadcaster

	API      *api.Client
	Cart     *cart.Facade
	Catalog  *catalog.Service
	Orders   *orders.Service
	Checkout *checkout.Service
}

// New creates an application instance, initializing all dependencies. With no
// Redis configured, credentials live in process memory and cross-process cart
// sync is disabled.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var (
		rdb         *redis.Client
		creds       credstore.Store
		broadcaster tabsync.Broadcaster
	)

	if cfg.RedisEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)

		creds = credstore.NewRedisStore(rdb, cfg.Profile)
		broadcaster = tabsync.NewRedisBroadcaster(rdb, cfg.Profile, logger)
	} else {
		logger.Info("no Redis configured, using in-memory credential store")
		creds = credstore.NewMemoryStore()
		broadcaster = tabsync.NewLocalBroadcaster(tabsync.NewLocalBus())
	}

	httpClient := httpclient.New(httpclient.Config{
		Timeout:         cfg.APITimeout,
		MaxRetries:      cfg.APIRetries,
		RetryWaitMin:    500 * time.Millisecond,
		RetryWaitMax:    5 * time.Second,
		MaxConnsPerHost: 10,
		// Merge adds are deduplicated server-side by batch key, so they
		// are the one class of mutation safe to re-issue.
		IdempotencyHeader: api.MergeBatchHeader,
	})
	breaker := httpclient.NewCircuitBreakerClient(
		httpClient,
		httpclient.DefaultCircuitBreakerConfig("ordering-api"),
		logger,
	)

	apiClient := api.New(cfg.APIBaseURL, breaker, creds, logger)

	guest := cart.NewGuestManager(creds, broadcaster, logger)
	server := cart.NewServerManager(apiClient, logger)
	facade := cart.NewFacade(creds, apiClient, guest, server, logger)

	return &App{
		cfg:         cfg,
		logger:      logger,
		rdb:         rdb,
		broadcaster: broadcaster,
		API:         apiClient,
		Cart:        facade,
		Catalog:     catalog.NewService(apiClient, logger),
		Orders:      orders.NewService(apiClient, logger),
		Checkout:    checkout.NewService(apiClient, facade, logger),
	}, nil
}

// Start restores the persisted session and subscribes to guest cart changes
// from other processes sharing the profile.
func (a *App) Start(ctx context.Context) error {
	if err := a.Cart.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	if err := a.broadcaster.Subscribe(ctx, a.Cart.HandleGuestCartChange); err != nil {
		return fmt.Errorf("subscribe to cart changes: %w", err)
	}

	a.logger.Info("storefront started",
		slog.String("profile", a.cfg.Profile),
		slog.String("state", a.Cart.State().String()),
	)
	return nil
}

// Close releases the broadcaster subscription and the Redis connection.
func (a *App) Close() error {
	if err := a.broadcaster.Close(); err != nil {
		a.logger.Warn("failed to close broadcaster", slog.String("error", err.Error()))
	}
	if a.rdb != nil {
		return a.rdb.Close()
	}
	return nil
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
