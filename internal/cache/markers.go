// Package cache provides small Redis-backed idempotency markers.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Markers stores short-lived presence keys, used to make replayed payment
// callbacks no-ops.
type Markers struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMarkers wraps an existing Redis client.
func NewMarkers(client *redis.Client, ttl time.Duration) *Markers {
	return &Markers{client: client, ttl: ttl}
}

// PaymentVerifiedKey is the marker key for a processed gateway order.
func PaymentVerifiedKey(gatewayOrderID string) string {
	return "payment:verified:" + gatewayOrderID
}

// Exists reports whether the key is present.
func (m *Markers) Exists(ctx context.Context, key string) (bool, error) {
	res, err := m.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

// Set records the marker with the configured TTL.
func (m *Markers) Set(ctx context.Context, key string) error {
	return m.client.Set(ctx, key, "1", m.ttl).Err()
}
