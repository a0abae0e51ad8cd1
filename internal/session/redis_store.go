package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/edunexus/schoolhub/internal/config"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session as a JSON blob with the token's lifetime and
// indexes session IDs per user.
type RedisStore struct {
	rdb *redis.Client
	now func() time.Time
}

// NewRedisStore creates a RedisStore.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, now: time.Now}
}

// Write stores s, replacing any previous value under the same ID.
func (r *RedisStore) Write(ctx context.Context, s Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("write session %s: already expired", s.ID)
	}

	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	userKey := config.CacheKey.UserSessionsKey(s.User.ID)
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, config.CacheKey.SessionKey(s.ID), blob, ttl)
	pipe.SAdd(ctx, userKey, s.ID)
	pipe.Expire(ctx, userKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Read loads a session or returns ErrSessionNotFound.
func (r *RedisStore) Read(ctx context.Context, sessionID string) (*Session, error) {
	blob, err := r.rdb.Get(ctx, config.CacheKey.SessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// UpdateUser overwrites the cached user of one session, keeping its TTL.
func (r *RedisStore) UpdateUser(ctx context.Context, sessionID string, u User) error {
	s, err := r.Read(ctx, sessionID)
	if err != nil {
		return err
	}
	s.User = u

	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.rdb.SetArgs(ctx, config.CacheKey.SessionKey(sessionID), blob, redis.SetArgs{KeepTTL: true, Mode: "XX"}).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// Clear deletes one session. Clearing a missing session is not an error.
func (r *RedisStore) Clear(ctx context.Context, sessionID string) error {
	s, err := r.Read(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, config.CacheKey.SessionKey(sessionID))
	pipe.SRem(ctx, config.CacheKey.UserSessionsKey(s.User.ID), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// ClearUser deletes all sessions of userID.
func (r *RedisStore) ClearUser(ctx context.Context, userID int) error {
	userKey := config.CacheKey.UserSessionsKey(userID)
	ids, err := r.rdb.SMembers(ctx, userKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("list user sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, config.CacheKey.SessionKey(id))
	}
	keys = append(keys, userKey)

	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear user sessions: %w", err)
	}
	return nil
}
