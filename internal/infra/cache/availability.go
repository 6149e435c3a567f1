package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
)

const availabilityPrefix = "availability:"

func versionKey(specialistID uint) string {
	return fmt.Sprintf("%sver:%d", availabilityPrefix, specialistID)
}

func dayKey(version int64, k availability.CacheKey) string {
	only := 0
	if k.OnlyAvailable {
		only = 1
	}
	return fmt.Sprintf("%s%d:v%d:%s:d%d:s%d:o%d",
		availabilityPrefix, k.SpecialistID, version, k.Date,
		k.DurationMinutes, k.StepMinutes, only,
	)
}

// AvailabilityCache keeps computed days in Redis. Invalidate bumps the
// specialist's version counter; stale entries simply expire.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl, log: log}
}

func (c *AvailabilityCache) version(ctx context.Context, specialistID uint) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(specialistID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *AvailabilityCache) Get(ctx context.Context, key availability.CacheKey) (*availability.Result, bool) {
	ver, err := c.version(ctx, key.SpecialistID)
	if err != nil {
		c.log.Warn("availability cache: version read failed", zap.Error(err))
		return nil, false
	}

	raw, err := c.client.Get(ctx, dayKey(ver, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("availability cache: get failed", zap.Error(err))
		}
		return nil, false
	}

	var res availability.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		c.log.Warn("availability cache: corrupt entry", zap.Error(err))
		return nil, false
	}
	return &res, true
}

func (c *AvailabilityCache) Set(ctx context.Context, key availability.CacheKey, res availability.Result) {
	ver, err := c.version(ctx, key.SpecialistID)
	if err != nil {
		c.log.Warn("availability cache: version read failed", zap.Error(err))
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, dayKey(ver, key), data, c.ttl).Err(); err != nil {
		c.log.Warn("availability cache: set failed", zap.Error(err))
	}
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, specialistID uint) {
	if err := c.client.Incr(ctx, versionKey(specialistID)).Err(); err != nil {
		c.log.Warn("availability cache: invalidate failed",
			zap.Uint("specialist_id", specialistID),
			zap.Error(err),
		)
	}
}

var _ availability.Cache = (*AvailabilityCache)(nil)
