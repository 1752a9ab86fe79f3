package worker

// reconcile_cron.go
// Background goroutine that periodically voids ledger records stuck in
// status='pending' (the balance transaction never committed).

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const reconcileBatchSize = 100

// StaleVoider is satisfied by service.ReconcileService.
type StaleVoider interface {
	VoidStalePending(ctx context.Context, olderThan time.Duration, batch int) (int, error)
}

// ReconcileCronConfig holds all dependencies for the reconciliation goroutine.
type ReconcileCronConfig struct {
	Reconciler StaleVoider
	Interval   time.Duration
	Grace      time.Duration
}

// StartReconcileCron ticks every Interval and voids pending records older than
// Grace. It respects the context for graceful shutdown.
func StartReconcileCron(ctx context.Context, cfg ReconcileCronConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("reconcile_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reconcile_cron: shutting down")
				return
			case <-ticker.C:
				runReconcile(ctx, cfg)
			}
		}
	}()
}

func runReconcile(ctx context.Context, cfg ReconcileCronConfig) {
	voided, err := cfg.Reconciler.VoidStalePending(ctx, cfg.Grace, reconcileBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("reconcile_cron: void stale pending failed")
		return
	}
	if voided > 0 {
		log.Warn().Int("voided", voided).Msg("reconcile_cron: abandoned ledger records marked failed")
	}
}
