package calendar

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/config"
)

// Refresher rewrites the cached calendars on a cron schedule, keeping the
// cache warm so the TTL never lapses on a live request path.
type Refresher struct {
	cfg   *config.Config
	cache *Cache
	cron  *cron.Cron
}

func NewRefresher(cfg *config.Config, cache *Cache) *Refresher {
	return &Refresher{
		cfg:   cfg,
		cache: cache,
		cron:  cron.New(),
	}
}

// Start schedules the periodic refresh. An invalid schedule is a
// configuration error and is reported before anything runs.
func (r *Refresher) Start() error {
	_, err := r.cron.AddFunc(r.cfg.Holidays.RefreshSchedule, func() {
		if err := r.cache.RefreshUpcoming(context.Background()); err != nil {
			slog.Error("holiday calendar refresh failed", "error", err.Error())
			return
		}
		slog.Info("holiday calendars refreshed")
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	return nil
}

// Stop waits for a running refresh to finish before returning.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
