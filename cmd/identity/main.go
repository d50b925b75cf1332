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
	"github.com/shoplite/catalog-system/internal/infrastructure/queue"
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

	userRepo := mongoinfra.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	auditService := service.NewAuditService(mongoinfra.NewAuditRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL())
	identityService := service.NewIdentityService(userRepo, codec, dispatcher, log)

	e := api.NewIdentityRouter(api.IdentityRouterConfig{
		Identity:   identityService,
		Audit:      auditService,
		Gatekeeper: gatekeeper.New(codec),
		Mongo:      db,
		Logger:     log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("identity server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("identity service started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
