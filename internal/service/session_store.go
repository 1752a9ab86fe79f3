package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore records revoked session ids until their tokens expire.
type SessionStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type redisSessionStore struct{ rdb *redis.Client }

func NewSessionStore(rdb *redis.Client) SessionStore { return &redisSessionStore{rdb: rdb} }

func revokedKey(sessionID string) string { return "session:revoked:" + sessionID }

func (s *redisSessionStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, revokedKey(sessionID), "1", ttl).Err()
}

func (s *redisSessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	err := s.rdb.Get(ctx, revokedKey(sessionID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
