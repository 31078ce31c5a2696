package holiday

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/worktime"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTTL = 24 * time.Hour

	// degraded years are retried sooner than fetched ones
	fallbackTTL = time.Minute

	maxConcurrentFetches = 4
)

type yearEntry struct {
	dates     map[string]struct{}
	fetchedAt time.Time
	// degraded entries hold the fallback list or the dates of an expired
	// fetch kept through a failed refresh
	degraded bool
}

// Cache keeps public holidays per year. Entries are replaced whole and never
// mutated, so a Calendar built from them is safe to share.
type Cache struct {
	source holiday.Source
	ttl    time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	years map[int]*yearEntry
}

func NewCache(source holiday.Source, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		years:  make(map[int]*yearEntry),
	}
}

// Load returns a calendar for the given years, fetching missing or expired
// years concurrently. A failed refresh keeps the previously fetched dates; a
// year never fetched is served from the fixed-date fallback.
func (c *Cache) Load(ctx context.Context, years ...int) holiday.Calendar {
	return c.load(ctx, years)
}

// Holidays lists the public holidays of one year, ascending.
func (c *Cache) Holidays(ctx context.Context, year int) []time.Time {
	return c.load(ctx, []int{year}).Dates(year)
}

func (c *Cache) load(ctx context.Context, years []int) *Calendar {
	stale := c.staleYears(years)
	if len(stale) == 0 {
		return c.snapshot(years, nil)
	}

	results := make([]fetchResult, len(stale))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, year := range stale {
		g.Go(func() error {
			dates, err := c.source.FetchHolidays(gctx, year)
			results[i] = fetchResult{dates: dates, err: err}
			return nil
		})
	}
	_ = g.Wait()

	// A cancelled caller must not leave degraded entries for other callers,
	// so its failed years are served to this call only.
	cancelled := ctx.Err() != nil
	transient := make(map[int]*yearEntry)

	now := c.now()
	c.mu.Lock()
	for i, year := range stale {
		res := results[i]
		if res.err == nil {
			c.years[year] = newYearEntry(res.dates, now, false)
			continue
		}

		previous, hasPrevious := c.years[year]
		if cancelled {
			if !hasPrevious {
				transient[year] = newYearEntry(FallbackHolidays(year), now, true)
			}
			continue
		}

		slog.Warn("Holiday fetch failed, serving degraded dates",
			"year", year,
			"kept_previous", hasPrevious,
			"error", res.err)
		if hasPrevious {
			// keep the last known dates and retry soon
			c.years[year] = &yearEntry{dates: previous.dates, fetchedAt: now, degraded: true}
			continue
		}
		c.years[year] = newYearEntry(FallbackHolidays(year), now, true)
	}
	c.mu.Unlock()

	return c.snapshot(years, transient)
}

// Warm loads the years around now so the first report of the day does not
// wait on the source.
func (c *Cache) Warm(ctx context.Context) error {
	y := c.now().Year()
	c.Load(ctx, y-1, y, y+1)
	return ctx.Err()
}

func (c *Cache) staleYears(years []int) []int {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	var stale []int
	seen := make(map[int]bool, len(years))
	for _, y := range years {
		if seen[y] {
			continue
		}
		seen[y] = true

		entry, ok := c.years[y]
		if !ok || c.expired(entry, now) {
			stale = append(stale, y)
		}
	}
	return stale
}

func (c *Cache) expired(e *yearEntry, now time.Time) bool {
	ttl := c.ttl
	if e.degraded && fallbackTTL < ttl {
		ttl = fallbackTTL
	}
	return now.Sub(e.fetchedAt) >= ttl
}

type fetchResult struct {
	dates []time.Time
	err   error
}

func newYearEntry(dates []time.Time, fetchedAt time.Time, degraded bool) *yearEntry {
	entry := &yearEntry{
		dates:     make(map[string]struct{}, len(dates)),
		fetchedAt: fetchedAt,
		degraded:  degraded,
	}
	for _, d := range dates {
		entry.dates[d.Format(dateLayout)] = struct{}{}
	}
	return entry
}

// snapshot merges the cached years, preferring entries from overrides.
func (c *Cache) snapshot(years []int, overrides map[int]*yearEntry) *Calendar {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cal := &Calendar{dates: make(map[string]struct{})}
	for _, y := range years {
		entry, ok := overrides[y]
		if !ok {
			entry, ok = c.years[y]
		}
		if !ok {
			continue
		}
		for d := range entry.dates {
			cal.dates[d] = struct{}{}
		}
	}
	return cal
}

// YearsForPeriod lists the prior, current and next years around a pay period.
func YearsForPeriod(p worktime.PayPeriod) []int {
	var years []int
	for y := p.Start.Year() - 1; y <= p.End.Year()+1; y++ {
		years = append(years, y)
	}
	return years
}

// YearsForPeriods merges YearsForPeriod over several periods, sorted.
func YearsForPeriods(periods ...worktime.PayPeriod) []int {
	set := make(map[int]struct{})
	for _, p := range periods {
		for _, y := range YearsForPeriod(p) {
			set[y] = struct{}{}
		}
	}
	years := make([]int, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
