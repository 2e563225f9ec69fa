package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/dataset"
)

// RedisStore keeps batches in Redis as JSON blobs so multiple server
// instances can serve the same generated data.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis with the given store config and verifies
// the connection with a ping.
func NewRedisStore(ctx context.Context, cfg config.StoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisStore{client: client, prefix: cfg.KeyPrefix}, nil
}

// NewRedisStoreWithClient wraps an existing client. Used by tests.
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) batchKey(id string) string {
	return s.prefix + "batch:" + id
}

func (s *RedisStore) latestKey() string {
	return s.prefix + "batch:latest"
}

func (s *RedisStore) Save(ctx context.Context, b *dataset.Batch) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal batch %s: %w", b.ID, err)
	}
	if err := s.client.Set(ctx, s.batchKey(b.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save batch %s: %w", b.ID, err)
	}
	if err := s.client.Set(ctx, s.latestKey(), b.ID, 0).Err(); err != nil {
		return fmt.Errorf("failed to update latest batch pointer: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*dataset.Batch, error) {
	data, err := s.client.Get(ctx, s.batchKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load batch %s: %w", id, err)
	}
	var b dataset.Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch %s: %w", id, err)
	}
	return &b, nil
}

func (s *RedisStore) Latest(ctx context.Context) (*dataset.Batch, error) {
	id, err := s.client.Get(ctx, s.latestKey()).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest batch pointer: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
