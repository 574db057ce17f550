package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
)

const favoritesKey = "medibook:favorites"

// RedisPersistence stores the favorites set as a JSON array under a
// single Redis key.
type RedisPersistence struct {
	redis *redis.Client
}

// NewRedisPersistence creates a Redis-backed persistence.
func NewRedisPersistence(client *redis.Client) *RedisPersistence {
	return &RedisPersistence{redis: client}
}

// Load reads the persisted set; a missing key yields an empty set.
func (p *RedisPersistence) Load(ctx context.Context) ([]string, error) {
	data, err := p.redis.Get(ctx, favoritesKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("favorites: get: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("favorites: unmarshal: %w", err)
	}
	return ids, nil
}

// Save overwrites the persisted set.
func (p *RedisPersistence) Save(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("favorites: marshal: %w", err)
	}
	if err := p.redis.Set(ctx, favoritesKey, data, 0).Err(); err != nil {
		return fmt.Errorf("favorites: set: %w", err)
	}
	return nil
}

// FilePersistence stores the favorites set as a JSON file, for
// deployments without Redis.
type FilePersistence struct {
	path string
}

// NewFilePersistence creates a file-backed persistence at path.
func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{path: path}
}

// Load reads the persisted set; a missing file yields an empty set.
func (p *FilePersistence) Load(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("favorites: read %s: %w", p.path, err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("favorites: unmarshal %s: %w", p.path, err)
	}
	return ids, nil
}

// Save overwrites the persisted set.
func (p *FilePersistence) Save(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("favorites: marshal: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("favorites: write %s: %w", p.path, err)
	}
	return nil
}
