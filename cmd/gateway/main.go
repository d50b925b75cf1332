package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shoplite/catalog-system/internal/gateway"
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

	gk := gatekeeper.New(token.NewCodec(cfg.JWTSecret, cfg.TokenTTL()))

	// Coarse-grained edge checks; each downstream service re-verifies with
	// its own finer-grained requirements.
	e, err := gateway.New(gk, []gateway.Route{
		{Prefix: "/auth", Target: cfg.Gateway.IdentityURL, Requirement: gatekeeper.None()},
		{Prefix: "/v1/products", Target: cfg.Gateway.CatalogURL, Requirement: gatekeeper.Authenticated()},
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("gateway setup failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("gateway stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("gateway started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
