package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/infra"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity; never exposes credentials or internals.
// The event broker and parked e-mails are reported but do not fail the check:
// ledger writes succeed without them.
func Health(db *gorm.DB, rdb *redis.Client, events *infra.EventPublisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		brokerStatus := "disabled"
		if events.Enabled() {
			brokerStatus = events.Breaker().State().String()
		}

		var dlq int64 = -1
		if n, err := worker.NewDeadLetters(rdb).Len(ctx, worker.QueueEmail); err == nil {
			dlq = n
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":        status == http.StatusOK,
			"db":        dbStatus,
			"redis":     redisStatus,
			"events":    brokerStatus,
			"email_dlq": dlq,
		})
	}
}
