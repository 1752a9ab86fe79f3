package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/config"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/infra"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/repository"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/router"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/service"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: pretty in dev, JSON in prod
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL, cfg.AutoMigrate)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Worker handlers are wired here (composition root) so that the pool
	// has full access to the infrastructure dependencies.
	mailer := infra.NewMailer(cfg)
	if !mailer.Enabled() {
		log.Warn().Msg("SMTP_HOST not set: notification e-mails will be dropped")
	}
	workerHandlers := &worker.WorkerHandlers{
		Email: worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	events := infra.NewEventPublisher(cfg.RabbitMQURL, cfg.EventExchange, infra.NewCircuitBreaker(infra.DefaultCBConfig()))
	if !events.Enabled() {
		log.Warn().Msg("RABBITMQ_URL not set: ledger events will not be published")
	}

	// Reconciler: voids ledger records whose balance transaction never committed
	reconcileSvc := service.NewReconcileService(
		repository.NewProfileRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewRedemptionRepository(db),
	)
	worker.StartReconcileCron(ctx, worker.ReconcileCronConfig{
		Reconciler: reconcileSvc,
		Interval:   time.Duration(cfg.ReconcileIntervalSeconds) * time.Second,
		Grace:      time.Duration(cfg.ReconcileGraceSeconds) * time.Second,
	})

	r := router.New(ctx, cfg, router.Deps{
		DB:       db,
		Redis:    rdb,
		Events:   events,
		Notifier: session.NewNotifier(),
	})

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// no WriteTimeout: /v1/auth/events is a long-lived stream
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("FidelizDiego API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
