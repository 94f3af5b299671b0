package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/profilehub/user-platform/internal/api/profile"
	"github.com/profilehub/user-platform/internal/core/service"
	mongodb "github.com/profilehub/user-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/profilehub/user-platform/internal/infrastructure/db/redis"
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

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure user indexes")
	}

	e := profile.NewRouter(profile.Deps{
		Profiles: service.NewProfileService(userRepo, log),
		Imports: service.NewImportService(
			redisdb.NewQueue(rdb),
			redisdb.NewRowDedup(rdb),
			cfg.Import.UploadDir,
			cfg.Import.RowPause,
			log,
		),
		Mongo: db,
		Redis: rdb,
		Log:   log,
	})

	go func() {
		if err := e.Start(":" + cfg.ProfilePort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("profile server")
		}
	}()
	log.Info().Str("port", cfg.ProfilePort).Msg("profile service started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("profile shutdown")
	}
}
