package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sastaease/storefront-backend/api/controllers"
	"github.com/sastaease/storefront-backend/api/routes"
	"github.com/sastaease/storefront-backend/internal/cart"
	"github.com/sastaease/storefront-backend/internal/catalog"
	"github.com/sastaease/storefront-backend/internal/pages"
	"github.com/sastaease/storefront-backend/internal/session"
	"github.com/sastaease/storefront-backend/pkg/backend"
	"github.com/sastaease/storefront-backend/pkg/config"
	"github.com/sastaease/storefront-backend/pkg/logger"
	"github.com/sastaease/storefront-backend/pkg/metrics"
	"github.com/sastaease/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	backendClient, err := backend.New(context.Background(), cfg.Backend, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap backend client", err)
		os.Exit(1)
	}

	sessionReader := session.NewReader(cfg.JWT, backendClient)

	changes, cancel := sessionReader.Subscribe()
	defer cancel()
	go func() {
		for change := range changes {
			ctx := logg.WithFields(context.Background(), map[string]any{
				"event":   string(change.Event),
				"user_id": change.UserID.String(),
			})
			logg.Info(ctx, "session change")
		}
	}()

	catalogService := catalog.NewService(catalog.ServiceParams{
		Repo:      catalog.NewRepository(backendClient),
		Cache:     redisClient,
		ViewStore: catalog.NewViewStateStore(redisClient, cfg.Catalog.ViewStateTTL),
		Config:    cfg.Catalog,
		Logger:    logg,
	})

	cartService := cart.NewService(cart.ServiceParams{
		Repo:   cart.NewRepository(backendClient),
		Locks:  redisClient,
		Config: cfg.Cart,
		Logger: logg,
	})

	pagesService := pages.NewService()

	registry := prometheus.NewRegistry()
	requestMetrics := metrics.NewRequestMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:         cfg,
			Logger:         logg,
			SessionReader:  sessionReader,
			CatalogService: catalogService,
			CartService:    cartService,
			PagesService:   pagesService,
			RequestMetrics: requestMetrics,
			Registry:       registry,
			Pingers: []controllers.NamedPinger{
				{Name: "backend", Pinger: backendClient},
				{Name: "redis", Pinger: redisClient},
			},
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
