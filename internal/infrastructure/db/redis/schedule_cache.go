package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mindline/booking-api/internal/api/metrics"
	"github.com/mindline/booking-api/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

// ScheduleCache caches rendered day-schedule views in Redis.
// Key format: provider-appointments:<provider_id>:<year-month-day>
//
// Every operation is best-effort: backend errors are logged and
// swallowed so the caller's request never fails on the cache.
type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewScheduleCache creates a ScheduleCache wrapping the given Redis
// client. A non-positive ttl falls back to defaultCacheTTL.
func NewScheduleCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *ScheduleCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ScheduleCache{client: client, ttl: ttl, log: log}
}

// GetDaySchedule reports (slots, true) on a hit and (nil, false) on a
// miss or any backend error.
func (c *ScheduleCache) GetDaySchedule(ctx context.Context, providerID string, year int, month time.Month, day int) ([]ports.DaySlot, bool) {
	raw, err := c.client.Get(ctx, dayKey(providerID, year, month, day)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("provider_id", providerID).Msg("day schedule cache read failed")
		}
		return nil, false
	}

	var slots []ports.DaySlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.log.Warn().Err(err).Str("provider_id", providerID).Msg("day schedule cache entry corrupt")
		return nil, false
	}
	return slots, true
}

// SetDaySchedule stores a rendered view with the configured TTL.
func (c *ScheduleCache) SetDaySchedule(ctx context.Context, providerID string, year int, month time.Month, day int, slots []ports.DaySlot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		c.log.Warn().Err(err).Str("provider_id", providerID).Msg("day schedule cache encode failed")
		return
	}
	if err := c.client.Set(ctx, dayKey(providerID, year, month, day), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("provider_id", providerID).Msg("day schedule cache write failed")
	}
}

// InvalidateDay drops the cached view for the day containing date.
func (c *ScheduleCache) InvalidateDay(ctx context.Context, providerID string, date time.Time) error {
	key := dayKey(providerID, date.Year(), date.Month(), date.Day())
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("invalidate %s: %w", key, err)
	}
	metrics.CacheInvalidationsTotal.Inc()
	return nil
}

func dayKey(providerID string, year int, month time.Month, day int) string {
	return fmt.Sprintf("provider-appointments:%s:%d-%d-%d", providerID, year, int(month), day)
}
