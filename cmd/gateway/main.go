package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/profilehub/user-platform/internal/api/gateway"
	"github.com/profilehub/user-platform/internal/core/service"
	mongodb "github.com/profilehub/user-platform/internal/infrastructure/db/mongo"
	"github.com/profilehub/user-platform/internal/infrastructure/objectstore"
	"github.com/profilehub/user-platform/internal/infrastructure/upstream"
	"github.com/profilehub/user-platform/internal/pkg/config"
	"github.com/profilehub/user-platform/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure user indexes")
	}

	store, err := objectstore.New(objectstore.Config{
		Endpoint:  cfg.Store.Endpoint,
		AccessKey: cfg.Store.AccessKey,
		SecretKey: cfg.Store.SecretKey,
		Bucket:    cfg.Store.Bucket,
		Region:    cfg.Store.Region,
		UseSSL:    cfg.Store.UseSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object store")
	}

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, store, tokens, log)

	e := gateway.NewRouter(gateway.Deps{
		Auth:    authService,
		Tokens:  tokens,
		Profile: upstream.New(cfg.Upstream.UserServiceURL, cfg.Upstream.Timeout, cfg.Upstream.Retries, log),
		Data:    upstream.New(cfg.Upstream.DataServiceURL, cfg.Upstream.Timeout, cfg.Upstream.Retries, log),
		Mongo:   db,
		Log:     log,
	})

	go func() {
		if err := e.Start(":" + cfg.GatewayPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("gateway server")
		}
	}()
	log.Info().Str("port", cfg.GatewayPort).Msg("gateway started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("gateway shutdown")
	}
}
