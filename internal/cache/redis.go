// Package cache provides an optional Redis-backed cache for scraped
// schedules. The scrape pipeline itself is stateless; this layer only
// short-circuits repeated REST reads of the same league.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fortuna/gametime/internal/schedule"
	"github.com/redis/go-redis/v9"
)

// ScheduleCache stores JSON-encoded schedule results under per-league keys.
type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection.
func New(redisURL string, ttl time.Duration) (*ScheduleCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &ScheduleCache{client: client, ttl: ttl}, nil
}

// Close closes the Redis connection.
func (c *ScheduleCache) Close() error {
	return c.client.Close()
}

// HealthCheck pings Redis to verify the connection.
func (c *ScheduleCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func scheduleKey(league string) string {
	return fmt.Sprintf("schedule:%s", league)
}

// GetSchedule returns the cached result for a league, or (nil, nil) on a
// cache miss.
func (c *ScheduleCache) GetSchedule(ctx context.Context, league string) (*schedule.Result, error) {
	data, err := c.client.Get(ctx, scheduleKey(league)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var res schedule.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decoding cached schedule: %w", err)
	}
	return &res, nil
}

// SetSchedule stores a result under the league key with the cache TTL.
func (c *ScheduleCache) SetSchedule(ctx context.Context, league string, res *schedule.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	return c.client.Set(ctx, scheduleKey(league), data, c.ttl).Err()
}
