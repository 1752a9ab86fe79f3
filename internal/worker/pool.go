package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail = "jobs:email"

	// MaxEmailAttempts bounds delivery attempts before a job is parked.
	MaxEmailAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueEmail pushes an email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return pushJob(ctx, d.rdb, queue, Job{Type: jobType, Payload: data})
}

func pushJob(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// JobHandler processes one job payload. A non-nil error schedules a retry.
type JobHandler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// WorkerHandlers holds the per-type job handlers wired at the composition root.
type WorkerHandlers struct {
	Email JobHandler
}

func (h *WorkerHandlers) forType(jobType string) JobHandler {
	if h == nil {
		return nil
	}
	switch jobType {
	case "email":
		return h.Email
	}
	return nil
}

// StartWorkerPool runs n consumers of the job queues until ctx is done.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, n int) {
	for i := 0; i < n; i++ {
		go consume(ctx, rdb, handlers, i)
	}
	log.Info().Int("workers", n).Strs("queues", queues).Msg("worker pool started")
}

var queues = []string{QueueEmail}

const (
	popTimeout   = 5 * time.Second
	redisBackoff = 2 * time.Second
)

func consume(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	logger := log.With().Int("worker", id).Logger()
	for ctx.Err() == nil {
		res, err := rdb.BRPop(ctx, popTimeout, queues...).Result()
		switch {
		case errors.Is(err, redis.Nil), ctx.Err() != nil:
			continue
		case err != nil:
			logger.Error().Err(err).Msg("dequeue failed")
			select {
			case <-ctx.Done():
			case <-time.After(redisBackoff):
			}
			continue
		}
		// res is [queue, value]
		processJob(ctx, rdb, handlers, res[0], res[1])
	}
	logger.Info().Msg("worker stopped")
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	h := handlers.forType(job.Type)
	if h == nil {
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("no handler for job type, dropping")
		return
	}

	err := h.Process(ctx, job.Payload)
	if err == nil {
		return
	}

	job.Attempts++
	if job.Attempts >= MaxEmailAttempts {
		NewDeadLetters(rdb).Park(ctx, queue, job, err)
		return
	}
	log.Warn().Err(err).Str("type", job.Type).Int("attempts", job.Attempts).Msg("job failed, requeueing")
	if perr := pushJob(ctx, rdb, queue, job); perr != nil {
		log.Error().Err(perr).Str("queue", queue).Msg("failed to requeue job")
	}
}
