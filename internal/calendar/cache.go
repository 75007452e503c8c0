// Package calendar keeps the org-wide holiday calendars in redis. The
// calendars change a few times a year, so week views should never wait on
// the HR platform for them.
package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/config"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/hrapi"
)

type Cache struct {
	cfg         *config.Config
	redisClient *redis.Client
	hr          *hrapi.Client
}

func NewCache(cfg *config.Config, rdb *redis.Client, hr *hrapi.Client) *Cache {
	return &Cache{
		cfg:         cfg,
		redisClient: rdb,
		hr:          hr,
	}
}

func (c *Cache) key(year int, state string) string {
	return fmt.Sprintf("holiday_calendar_%d_%s", year, state)
}

// Calendar returns the multi-state calendar for a year, serving the cached
// copy when there is one. Redis failures fall through to the upstream
// fetch; the cache being down must not break week views.
func (c *Cache) Calendar(ctx context.Context, year int, state string) (*domain.HolidayCalendar, error) {
	if state == "" {
		state = c.cfg.Holidays.DefaultState
	}
	key := c.key(year, state)

	cached, err := c.redisClient.Get(ctx, key).Result()
	switch {
	case err == nil:
		cal := &domain.HolidayCalendar{}
		if err := json.Unmarshal([]byte(cached), cal); err == nil {
			return cal, nil
		}
		// undecodable entries are stale garbage, drop and refetch
		slog.Warn("discarding bad holiday calendar cache entry", "key", key)
		_ = c.redisClient.Del(ctx, key).Err()
	case !errors.Is(err, redis.Nil):
		slog.Warn("holiday calendar cache read failed", "key", key, "error", err.Error())
	}

	return c.fetchAndStore(ctx, year, state)
}

// RefreshYear re-fetches one year's calendar and overwrites the cached
// copy. The scheduled refresh calls this so entries are rewritten before
// their TTL runs out on a live request path.
func (c *Cache) RefreshYear(ctx context.Context, year int, state string) error {
	if state == "" {
		state = c.cfg.Holidays.DefaultState
	}

	_, err := c.fetchAndStore(ctx, year, state)
	return err
}

// RefreshUpcoming refreshes the current and next year for the default
// state. Weeks spanning a year boundary need both.
func (c *Cache) RefreshUpcoming(ctx context.Context) error {
	year := time.Now().Year()
	for _, y := range []int{year, year + 1} {
		if err := c.RefreshYear(ctx, y, ""); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) fetchAndStore(ctx context.Context, year int, state string) (*domain.HolidayCalendar, error) {
	cal, err := c.hr.HolidayCalendar(ctx, year, state)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(cal)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(c.cfg.Holidays.CacheTTL) * time.Second
	if err := c.redisClient.Set(ctx, c.key(year, state), payload, ttl).Err(); err != nil {
		slog.Warn("holiday calendar cache write failed", "year", year, "state", state, "error", err.Error())
	}

	return cal, nil
}
