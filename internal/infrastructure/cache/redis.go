package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

// RedisTier is the optional shared L2. Every operation runs through a
// circuit breaker so a dead backend degrades the layer to L1-only instead of
// adding a connection timeout to every request.
type RedisTier struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewRedisTier(addr, password string, db int) *RedisTier {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	settings := gobreaker.Settings{
		Name:    "cache_l2",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("cache_l2_breaker_state_change",
				"name", name, "from", from.String(), "to", to.String())
		},
	}

	return &RedisTier{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

func (t *RedisTier) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := t.breaker.Execute(func() ([]byte, error) {
		data, err := t.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("redis get: %w", err)
		}
		return data, nil
	})
	if err != nil {
		slog.Warn("cache_l2_get_failed", "error", err)
		return nil, false
	}
	return payload, payload != nil
}

func (t *RedisTier) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	_, err := t.breaker.Execute(func() ([]byte, error) {
		if err := t.client.Set(ctx, key, payload, ttl).Err(); err != nil {
			return nil, fmt.Errorf("redis set: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		slog.Warn("cache_l2_set_failed", "error", err)
	}
}

// DeletePrefix removes every key under the prefix via SCAN so unrelated
// businesses' entries stay untouched.
func (t *RedisTier) DeletePrefix(ctx context.Context, prefix string) {
	_, err := t.breaker.Execute(func() ([]byte, error) {
		iter := t.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			if err := t.client.Del(ctx, iter.Val()).Err(); err != nil {
				return nil, fmt.Errorf("redis del: %w", err)
			}
		}
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		slog.Warn("cache_l2_invalidate_failed", "prefix", prefix, "error", err)
	}
}

func (t *RedisTier) Close() error {
	return t.client.Close()
}
