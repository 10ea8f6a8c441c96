package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HIMS4RA/CocoPro/internal/config"
	"github.com/HIMS4RA/CocoPro/internal/infra"
	"github.com/HIMS4RA/CocoPro/internal/repository"
	"github.com/HIMS4RA/CocoPro/internal/router"
	"github.com/HIMS4RA/CocoPro/internal/scheduler"
	"github.com/HIMS4RA/CocoPro/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	if err := os.MkdirAll(cfg.PDFStoragePath, 0o755); err != nil {
		log.Fatal().Err(err).Str("path", cfg.PDFStoragePath).Msg("failed to create report directory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Async alert delivery: mutations enqueue, the pool drains.
	dispatcher := worker.NewDispatcher(rdb)
	sink := worker.NewQueueSink(dispatcher)
	mailer := infra.NewMailer(cfg)
	smtpBreaker := infra.NewCircuitBreaker(5, 2, 30*time.Second)
	handlers := &worker.Handlers{
		Alerts: worker.NewAlertWorker(mailer, smtpBreaker, cfg.AlertEmail),
	}
	worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)

	// Daily low stock sweep
	sched := scheduler.New()
	itemRepo := repository.NewStockItemRepository(db)
	if err := sched.RegisterLowStockSweep(cfg.LowStockSweepCron, itemRepo, sink); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.LowStockSweepCron).Msg("invalid sweep schedule")
	}
	sched.Start()

	r := router.New(cfg, db, rdb, sink)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	sched.Stop()
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}
	log.Info().Msg("bye")
}
