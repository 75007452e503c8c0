package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/calendar"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/config"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/hrapi"
)

func main() {
	var year int
	var state string

	flag.IntVar(&year, "year", 0, "calendar year to warm (0 warms the current and next year)")
	flag.StringVar(&state, "state", "", "state calendar to warm (empty uses the configured default)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// load config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// connect to redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	// fail fast when redis is unreachable instead of silently warming nothing
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("could not connect to redis", slog.String("error", err.Error()))
		return
	}

	// create the HR platform client and the cache
	hr := hrapi.NewClient(cfg)
	cache := calendar.NewCache(cfg, rdb, hr)

	years := []int{year}
	if year == 0 {
		current := time.Now().Year()
		years = []int{current, current + 1}
	}

	cnt := 0
	for _, y := range years {
		if err := cache.RefreshYear(context.Background(), y, state); err != nil {
			slog.Error("could not warm the holiday calendar", slog.Int("year", y), slog.String("error", err.Error()))
			continue
		}
		cnt++
	}

	slog.Info("holiday calendars warmed", slog.Int("count", cnt))
}
