// Package redisstore implements store.KV on Redis. Each record is one
// string value, written atomically with SET and never expired: the
// dashboard's records are canonical state, not a cache.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for the persisted dashboard records.
type Store struct {
	client *redis.Client
}

// New creates a Redis-backed record store.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Load fetches the requested records in one round trip. Keys that do
// not exist yet are omitted from the result.
func (s *Store) Load(ctx context.Context, keys ...string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		data, err := s.client.Get(ctx, RecordKey(key)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to load record %q: %w", key, err)
		}
		out[key] = data
	}
	return out, nil
}

// Save writes one record as a single value.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, RecordKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save record %q: %w", key, err)
	}
	return nil
}
