package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/profilehub/user-platform/internal/api/metrics"
	"github.com/profilehub/user-platform/internal/core/service"
	redisdb "github.com/profilehub/user-platform/internal/infrastructure/db/redis"
	"github.com/profilehub/user-platform/internal/pkg/config"
	"github.com/profilehub/user-platform/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() { _ = rdb.Close() }()

	queue := redisdb.NewQueue(rdb)
	imports := service.NewImportService(
		queue,
		redisdb.NewRowDedup(rdb),
		cfg.Import.UploadDir,
		cfg.Import.RowPause,
		log,
	)

	// Metrics-only HTTP listener; the worker has no API surface.
	metricsSrv := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: promhttp.Handler()}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server")
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("metrics_port", cfg.MetricsPort).Msg("import worker started")

	for {
		job, err := queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("import worker stopping")
				return
			}
			log.Error().Err(err).Msg("dequeue failed")
			time.Sleep(time.Second)
			continue
		}

		if depth, err := queue.Depth(ctx); err == nil {
			metrics.ImportQueueDepth.Set(float64(depth))
		}

		if job == nil {
			// Blocking pop timed out with nothing to do; loop to
			// re-check the context.
			continue
		}

		log.Info().Str("job_id", job.ID).Str("file", job.FilePath).Msg("import job received")
		if err := imports.Process(ctx, *job); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Str("job_id", job.ID).Msg("import job failed")
		}
	}
}
