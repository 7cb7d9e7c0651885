package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session records in redis with the TTL applied natively.
// Used when the gateway runs with more than one replica.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (s *RedisStore) Put(ctx context.Context, rec *Record) error {
	encoded, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, rec.Token)
	}
	if err := s.client.Set(ctx, sessionKey(rec.Token), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Record, error) {
	raw, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
