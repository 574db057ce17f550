package appointments

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "medibook:appointments"

// RedisSnapshot stores the serialized appointment collection under a
// single Redis key.
type RedisSnapshot struct {
	redis *redis.Client
}

// NewRedisSnapshot creates a Redis-backed snapshot.
func NewRedisSnapshot(client *redis.Client) *RedisSnapshot {
	return &RedisSnapshot{redis: client}
}

// Load reads the persisted collection. A missing key is empty data.
func (s *RedisSnapshot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.redis.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("appointments: get snapshot: %w", err)
	}
	return data, nil
}

// Save overwrites the persisted collection.
func (s *RedisSnapshot) Save(ctx context.Context, data []byte) error {
	if err := s.redis.Set(ctx, snapshotKey, data, 0).Err(); err != nil {
		return fmt.Errorf("appointments: set snapshot: %w", err)
	}
	return nil
}
