package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "otp:"

// RedisStore keeps OTP records in Redis with TTL eviction, so codes
// survive process restarts and horizontal scaling. Unlike the read
// cache this store surfaces real errors: a dropped write must not look
// like a successful issue.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed OTP store.
func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Save stores the record under the destination key with the given TTL.
func (s *RedisStore) Save(ctx context.Context, destination string, rec Record, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal otp record: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+destination, payload, ttl).Err(); err != nil {
		return fmt.Errorf("store otp record: %w", err)
	}
	return nil
}

// Get returns the record for destination or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, destination string) (Record, error) {
	data, err := s.client.Get(ctx, keyPrefix+destination).Bytes()
	if err == redis.Nil {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("load otp record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("unmarshal otp record: %w", err)
	}
	return rec, nil
}

// Delete removes the record for destination.
func (s *RedisStore) Delete(ctx context.Context, destination string) error {
	if err := s.client.Del(ctx, keyPrefix+destination).Err(); err != nil {
		return fmt.Errorf("delete otp record: %w", err)
	}
	return nil
}
