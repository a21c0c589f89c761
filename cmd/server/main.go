package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mkravtsov/storefront/internal/cache"
	"github.com/mkravtsov/storefront/internal/config"
	"github.com/mkravtsov/storefront/internal/db"
	"github.com/mkravtsov/storefront/internal/es"
	"github.com/mkravtsov/storefront/internal/handlers"
	"github.com/mkravtsov/storefront/internal/logging"
	authmw "github.com/mkravtsov/storefront/internal/middleware/auth"
	"github.com/mkravtsov/storefront/internal/middleware/loggingmw"
	"github.com/mkravtsov/storefront/internal/mykafka"
	"github.com/mkravtsov/storefront/internal/repo"
	"github.com/mkravtsov/storefront/internal/seed"
	"github.com/mkravtsov/storefront/internal/service"
	httpserver "github.com/mkravtsov/storefront/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	ctx := context.Background()
	gormDB, err := db.Open(ctx, configuration)
	if err != nil {
		logger.Error("database init failed", "error", err)
		os.Exit(1)
	}

	if err := seed.Run(ctx, gormDB); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var esClient *elasticsearch.Client
	if configuration.ES_URL != "" {
		esClient, err = es.NewClient(configuration)
		if err != nil {
			logger.Error("elasticsearch init failed", "error", err)
			os.Exit(1)
		}
	}

	cartCache := cache.NewCartCount(configuration.REDIS_ADDR)

	store := repo.NewGormRepo(gormDB)
	tokens := &authmw.TokenService{
		Repo:          store,
		JWTSecret:     []byte(configuration.JWT_SECRET),
		RefreshSecret: []byte(configuration.REFRESH_SECRET),
	}

	cartSvc := &service.CartService{Repo: store}

	deps := httpserver.Deps{
		Tokens: tokens,
		AuthHandler: &handlers.AuthHandler{
			Svc:      &service.AuthService{Repo: store},
			Tokens:   tokens,
			Producer: producer,
		},
		CatalogHandler: &handlers.CatalogHandler{
			Svc:   &service.CatalogService{Repo: store},
			Cart:  cartSvc,
			Cache: cartCache,
		},
		CartHandler: &handlers.CartHandler{
			Svc:      cartSvc,
			Producer: producer,
			Cache:    cartCache,
		},
		OrderHandler: &handlers.OrderHandler{
			Svc:      &service.OrderService{Repo: store},
			Producer: producer,
			Cache:    cartCache,
		},
		AdminHandler: &handlers.AdminHandler{
			Svc:      &service.AdminService{Repo: store},
			Producer: producer,
		},
		SearchHandler: &handlers.SearchHandler{ES: esClient, Index: "products"},
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "addr", configuration.HTTP_ADDR)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}
	if err := cartCache.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	logger.Info("shutdown complete")
}
