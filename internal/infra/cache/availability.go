// Package cache holds the Redis read-through layer for resolved availability.
// Cache failures degrade to the store; they are logged, never surfaced.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

// Invalidation bumps a per-provider version instead of scanning for keys;
// stale entries fall out via TTL.
func (c *AvailabilityCache) versionKey(providerID uuid.UUID) string {
	return fmt.Sprintf("availability:ver:%s", providerID)
}

func (c *AvailabilityCache) datesKey(providerID uuid.UUID, version int64, from time.Time, horizonDays int) string {
	return fmt.Sprintf("availability:dates:%s:%d:%s:%d", providerID, version, from.Format("2006-01-02"), horizonDays)
}

func (c *AvailabilityCache) currentVersion(ctx context.Context, providerID uuid.UUID) (int64, error) {
	version, err := c.client.Get(ctx, c.versionKey(providerID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return version, err
}

func (c *AvailabilityCache) GetDates(ctx context.Context, providerID uuid.UUID, from time.Time, horizonDays int) ([]string, bool) {
	version, err := c.currentVersion(ctx, providerID)
	if err != nil {
		slog.Warn("availability cache version lookup failed", "provider_id", providerID, "error", err.Error())
		return nil, false
	}

	raw, err := c.client.Get(ctx, c.datesKey(providerID, version, from, horizonDays)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("availability cache read failed", "provider_id", providerID, "error", err.Error())
		}
		return nil, false
	}

	var dates []string
	if err := json.Unmarshal(raw, &dates); err != nil {
		slog.Warn("availability cache entry corrupt", "provider_id", providerID, "error", err.Error())
		return nil, false
	}
	return dates, true
}

func (c *AvailabilityCache) SetDates(ctx context.Context, providerID uuid.UUID, from time.Time, horizonDays int, dates []string) {
	version, err := c.currentVersion(ctx, providerID)
	if err != nil {
		slog.Warn("availability cache version lookup failed", "provider_id", providerID, "error", err.Error())
		return
	}

	raw, err := json.Marshal(dates)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, c.datesKey(providerID, version, from, horizonDays), raw, c.ttl).Err(); err != nil {
		slog.Warn("availability cache write failed", "provider_id", providerID, "error", err.Error())
	}
}

func (c *AvailabilityCache) InvalidateProvider(ctx context.Context, providerID uuid.UUID) {
	pipe := c.client.Pipeline()
	pipe.Incr(ctx, c.versionKey(providerID))
	pipe.Expire(ctx, c.versionKey(providerID), 24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("availability cache invalidation failed", "provider_id", providerID, "error", err.Error())
	}
}
