package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shoplite/catalog-system/internal/api"
	"github.com/shoplite/catalog-system/internal/core/service"
	mongoinfra "github.com/shoplite/catalog-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/shoplite/catalog-system/internal/infrastructure/db/redis"
	"github.com/shoplite/catalog-system/internal/pkg/config"
	"github.com/shoplite/catalog-system/pkg/gatekeeper"
	"github.com/shoplite/catalog-system/pkg/logger"
	"github.com/shoplite/catalog-system/pkg/token"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Pretty()})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() { _ = rdb.Close() }()

	productRepo := mongoinfra.NewProductRepository(db)
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("product index creation failed")
	}

	productService := service.NewProductService(productRepo, redisinfra.NewProductCache(rdb), log)

	// The catalog re-verifies every request itself with the same shared
	// gatekeeper the edge uses; it never trusts the edge's decision.
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL())

	e := api.NewCatalogRouter(api.CatalogRouterConfig{
		Products:   productService,
		Gatekeeper: gatekeeper.New(codec),
		Mongo:      db,
		Redis:      rdb,
		Logger:     log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("catalog server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("catalog service started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
