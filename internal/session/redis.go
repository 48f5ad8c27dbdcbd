package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

// RedisStore backs the cache with Redis so server-rendered frontends can
// share one session across processes. Keys live under a common prefix;
// Clear removes everything under it.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. ttl bounds entries whose
// session carries no expiry of its own.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "authcache:",
		ttl:    ttl,
	}
}

func (s *RedisStore) sessionKey() string { return s.prefix + "session" }

// Session implements domain.SessionStore
func (s *RedisStore) Session(ctx context.Context) (*domain.Session, error) {
	data, err := s.client.Get(ctx, s.sessionKey()).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionAbsent
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if session.Expired() {
		s.client.Del(ctx, s.sessionKey())
		return nil, domain.ErrSessionAbsent
	}

	return &session, nil
}

// SetSession implements domain.SessionStore
func (s *RedisStore) SetSession(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := s.ttl
	if !session.ExpiresAt.IsZero() {
		if remaining := time.Until(session.ExpiresAt); remaining > 0 {
			ttl = remaining
		}
	}

	return s.client.Set(ctx, s.sessionKey(), data, ttl).Err()
}

// Invalidate implements domain.SessionStore
func (s *RedisStore) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, s.sessionKey()).Err()
}

// Clear implements domain.SessionStore
func (s *RedisStore) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Put caches an application entry under the store prefix
func (s *RedisStore) Put(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	return s.client.Set(ctx, s.prefix+key, data, s.ttl).Err()
}

// Get reads an application entry into out
func (s *RedisStore) Get(ctx context.Context, key string, out any) error {
	data, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return domain.ErrSessionAbsent
		}
		return err
	}
	return json.Unmarshal([]byte(data), out)
}
