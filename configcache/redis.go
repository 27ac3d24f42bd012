package configcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore persists the cache slots under two keys sharing a prefix, so a
// fleet of processes serving the same merchant shares one freshness window.
// Keys carry no redis expiry; staleness is the cache's decision, not the
// store's.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore wraps an existing client. prefix namespaces the keys and
// defaults to "afterpay".
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "afterpay"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(slot string) string {
	return s.prefix + ":" + slot
}

func (s *RedisStore) Configuration(ctx context.Context) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.key(slotConfiguration)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", slotConfiguration, err)
	}
	return raw, nil
}

func (s *RedisStore) SetConfiguration(ctx context.Context, raw []byte) error {
	return s.set(ctx, slotConfiguration, raw)
}

func (s *RedisStore) LastFetch(ctx context.Context) (time.Time, error) {
	raw, err := s.client.Get(ctx, s.key(slotLastFetch)).Bytes()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read %s: %w", slotLastFetch, err)
	}
	return parseFetchTime(raw)
}

func (s *RedisStore) SetLastFetch(ctx context.Context, at time.Time) error {
	if at.IsZero() {
		return s.set(ctx, slotLastFetch, nil)
	}
	return s.set(ctx, slotLastFetch, formatFetchTime(at))
}

func (s *RedisStore) set(ctx context.Context, slot string, value []byte) error {
	if value == nil {
		if err := s.client.Del(ctx, s.key(slot)).Err(); err != nil {
			return fmt.Errorf("clear %s: %w", slot, err)
		}
		return nil
	}
	if err := s.client.Set(ctx, s.key(slot), value, 0).Err(); err != nil {
		return fmt.Errorf("write %s: %w", slot, err)
	}
	return nil
}
