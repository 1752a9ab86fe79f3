package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Jobs that exhaust their attempts are parked in dead:{queue} until a
// manager replays them.
const deadPrefix = "dead:"

func deadKey(queue string) string { return deadPrefix + queue }

// DeadLetter is a parked job plus the last failure that parked it.
type DeadLetter struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Error    string          `json:"error"`
	Attempts int             `json:"attempts"`
	ParkedAt time.Time       `json:"parked_at"`
}

// DeadLetters is the Redis-backed parking lot for failed jobs.
type DeadLetters struct {
	rdb *redis.Client
	now func() time.Time
}

func NewDeadLetters(rdb *redis.Client) *DeadLetters {
	return &DeadLetters{rdb: rdb, now: time.Now}
}

// Park stores job with its failure. Errors are logged: the job is already lost
// to its queue and there is nowhere else to report.
func (d *DeadLetters) Park(ctx context.Context, queue string, job Job, cause error) {
	entry := DeadLetter{
		Queue:    queue,
		Type:     job.Type,
		Payload:  job.Payload,
		Error:    cause.Error(),
		Attempts: job.Attempts,
		ParkedAt: d.now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dead letter: marshal")
		return
	}
	if err := d.rdb.LPush(ctx, deadKey(queue), data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Str("type", job.Type).Msg("dead letter: push failed, job dropped")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("type", job.Type).
		Int("attempts", job.Attempts).
		Err(cause).
		Msg("job parked")
}

// Len counts parked jobs for queue.
func (d *DeadLetters) Len(ctx context.Context, queue string) (int64, error) {
	return d.rdb.LLen(ctx, deadKey(queue)).Result()
}

// Replay moves up to max parked jobs, oldest first, back onto their queue
// with a fresh attempt count.
func (d *DeadLetters) Replay(ctx context.Context, queue string, max int) (int, error) {
	key := deadKey(queue)
	n := 0
	for n < max {
		raw, err := d.rdb.RPop(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return n, err
		}

		var entry DeadLetter
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("dead letter: unreadable entry discarded")
			continue
		}
		if err := pushJob(ctx, d.rdb, entry.Queue, Job{Type: entry.Type, Payload: entry.Payload}); err != nil {
			_ = d.rdb.RPush(ctx, key, raw).Err()
			return n, err
		}
		n++
	}
	if n > 0 {
		log.Info().Str("queue", queue).Int("replayed", n).Msg("parked jobs replayed")
	}
	return n, nil
}
