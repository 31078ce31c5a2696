package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const warmHolidayCacheJob = "warm_holiday_cache"

// HolidayWarmer refreshes cached holiday years around the current date.
type HolidayWarmer interface {
	Warm(ctx context.Context) error
}

type HolidayJobs struct {
	warmer   HolidayWarmer
	interval time.Duration
	timeout  time.Duration
}

func NewHolidayJobs(warmer HolidayWarmer, interval, timeout time.Duration) *HolidayJobs {
	return &HolidayJobs{
		warmer:   warmer,
		interval: interval,
		timeout:  timeout,
	}
}

func (j *HolidayJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(warmHolidayCacheJob, j.interval, j.timeout, j.WarmHolidayCache)
}

// WarmHolidayCache refetches stale holiday years so report requests hit the cache.
func (j *HolidayJobs) WarmHolidayCache(ctx context.Context) error {
	slog.Info("Cron: Starting holiday cache warm job")

	if err := j.warmer.Warm(ctx); err != nil {
		return fmt.Errorf("warm holiday cache: %w", err)
	}

	slog.Info("Cron: Holiday cache warm job completed")
	return nil
}
