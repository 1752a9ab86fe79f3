package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EventPublisher is satisfied by *infra.EventPublisher.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// EmailQueue is satisfied by *worker.Dispatcher.
type EmailQueue interface {
	EnqueueEmail(ctx context.Context, payload worker.EmailJobPayload) error
}

// RankingCache stores computed leaderboards per tenant and limit. Get reports
// the tenant's cache version even on a miss; Set stores only while that
// version is still current, so a leaderboard computed before an Invalidate
// is never cached after it.
type RankingCache interface {
	Get(ctx context.Context, tenantID uuid.UUID, limit int) (resp *dto.RankingResponse, version int64, ok bool)
	Set(ctx context.Context, tenantID uuid.UUID, limit int, version int64, resp *dto.RankingResponse)
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

// Ledger event routing keys.
const (
	EventPointsAssigned = "points.assigned"
	EventRewardRedeemed = "reward.redeemed"
)

// LedgerEvent is the message body published for every applied ledger record.
type LedgerEvent struct {
	Type       string `json:"type"`
	RecordID   string `json:"record_id"`
	TenantID   string `json:"tenant_id"`
	EmployeeID string `json:"employee_id"`
	ActorID    string `json:"actor_id"`
	Amount     int64  `json:"amount"` // signed balance effect
	NewBalance int64  `json:"new_balance"`
	At         string `json:"at"`
}

// SideEffects runs the post-commit work of a ledger write. Every member is
// optional and every failure is logged, never returned: the ledger write has
// already committed.
type SideEffects struct {
	Events  EventPublisher
	Emails  EmailQueue
	Ranking RankingCache
}

func (s *SideEffects) afterWrite(ctx context.Context, tenantID uuid.UUID, ev LedgerEvent, mail *worker.EmailJobPayload) {
	if s == nil {
		return
	}
	if s.Ranking != nil {
		s.Ranking.Invalidate(ctx, tenantID)
	}
	if s.Events != nil {
		if err := s.Events.Publish(ctx, ev.Type, ev); err != nil {
			log.Warn().Err(err).Str("event", ev.Type).Str("record_id", ev.RecordID).Msg("ledger event not published")
		}
	}
	if s.Emails != nil && mail != nil && mail.ToEmail != "" {
		if err := s.Emails.EnqueueEmail(ctx, *mail); err != nil {
			log.Warn().Err(err).Str("to", mail.ToEmail).Msg("notification e-mail not enqueued")
		}
	}
}

// ── Redis ranking cache ──────────────────────────────────────────────────────

type redisRankingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRankingCache keeps one Redis hash per tenant ("ranking:{tenant}") with a
// field per requested limit, plus a version counter ("ranking:{tenant}:v")
// bumped by every invalidation. Returns nil when rdb is nil.
func NewRankingCache(rdb *redis.Client, ttl time.Duration) RankingCache {
	if rdb == nil {
		return nil
	}
	return &redisRankingCache{rdb: rdb, ttl: ttl}
}

func rankingKey(tenantID uuid.UUID) string        { return fmt.Sprintf("ranking:%s", tenantID) }
func rankingVersionKey(tenantID uuid.UUID) string { return fmt.Sprintf("ranking:%s:v", tenantID) }

func (c *redisRankingCache) Get(ctx context.Context, tenantID uuid.UUID, limit int) (*dto.RankingResponse, int64, bool) {
	pipe := c.rdb.Pipeline()
	verCmd := pipe.Get(ctx, rankingVersionKey(tenantID))
	rawCmd := pipe.HGet(ctx, rankingKey(tenantID), strconv.Itoa(limit))
	_, _ = pipe.Exec(ctx)

	version, err := verCmd.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Msg("ranking cache version read failed")
		// unknown version: report a miss that Set will refuse to store
		return nil, -1, false
	}

	raw, err := rawCmd.Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("ranking cache read failed")
		}
		return nil, version, false
	}
	var resp dto.RankingResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, version, false
	}
	return &resp, version, true
}

func (c *redisRankingCache) Set(ctx context.Context, tenantID uuid.UUID, limit int, version int64, resp *dto.RankingResponse) {
	if version < 0 {
		return
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return
	}
	verKey, key := rankingVersionKey(tenantID), rankingKey(tenantID)

	// WATCH aborts the write if an invalidation lands between the check and EXEC
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, strconv.Itoa(limit), b)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, verKey)
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		log.Warn().Err(err).Msg("ranking cache write failed")
	}
}

func (c *redisRankingCache) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, rankingVersionKey(tenantID))
	pipe.Del(ctx, rankingKey(tenantID))
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID.String()).Msg("ranking cache invalidation failed")
	}
}
