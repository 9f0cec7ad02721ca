// Package dedup remembers video IDs across runs so repeated schedules do not
// re-collect the same videos. Backed by redis; the engine treats the store as
// advisory and keeps running when it is unavailable.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "tiktok:seen:"

// DefaultTTL keeps an ID marked long enough to cover the collection horizon
// without growing the keyspace forever.
const DefaultTTL = 30 * 24 * time.Hour

// SeenStore tracks previously collected video IDs in redis.
type SeenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redis at addr and verifies the connection.
func New(ctx context.Context, addr string, ttl time.Duration) (*SeenStore, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("dedup: connecting to redis: %w", err)
	}
	return &SeenStore{client: client, ttl: ttl}, nil
}

// NewWithClient wraps an existing client. Used in tests.
func NewWithClient(client *redis.Client, ttl time.Duration) *SeenStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SeenStore{client: client, ttl: ttl}
}

// IsNew reports whether the video ID has not been marked before.
func (s *SeenStore) IsNew(ctx context.Context, videoID string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+videoID).Result()
	if err != nil {
		return false, fmt.Errorf("dedup: checking %s: %w", videoID, err)
	}
	return n == 0, nil
}

// MarkSeen records the video ID with the store's TTL.
func (s *SeenStore) MarkSeen(ctx context.Context, videoID string) error {
	if err := s.client.Set(ctx, keyPrefix+videoID, "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("dedup: marking %s: %w", videoID, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *SeenStore) Close() error {
	return s.client.Close()
}
