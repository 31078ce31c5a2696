package holiday

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/worktime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu      sync.Mutex
	calls   map[int]int
	dates   map[int][]time.Time
	failFor map[int]bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		calls:   make(map[int]int),
		dates:   make(map[int][]time.Time),
		failFor: make(map[int]bool),
	}
}

func (f *fakeSource) FetchHolidays(ctx context.Context, year int) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[year]++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.failFor[year] {
		return nil, errors.New("source unavailable")
	}
	return f.dates[year], nil
}

func (f *fakeSource) setFailing(year int, failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failFor[year] = failing
}

func (f *fakeSource) callCount(year int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[year]
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalendar_IsHoliday(t *testing.T) {
	cal := NewCalendar(date(2024, 3, 20))

	assert.True(t, cal.IsHoliday(date(2024, 3, 3)), "sunday not in the set")
	assert.False(t, cal.IsHoliday(date(2024, 3, 2)), "saturday")
	assert.True(t, cal.IsHoliday(date(2024, 3, 20)))
	assert.False(t, cal.IsHoliday(date(2024, 3, 21)))
}

func TestCache_LoadMergesYears(t *testing.T) {
	src := newFakeSource()
	src.dates[2023] = []time.Time{date(2023, 12, 29)}
	src.dates[2024] = []time.Time{date(2024, 2, 12), date(2024, 2, 12)}

	c := NewCache(src, time.Hour)
	cal := c.Load(context.Background(), 2023, 2024, 2024)

	assert.True(t, cal.IsHoliday(date(2023, 12, 29)))
	assert.True(t, cal.IsHoliday(date(2024, 2, 12)))
	assert.False(t, cal.IsHoliday(date(2024, 2, 13)))
	assert.Equal(t, 1, src.callCount(2024))
}

func TestCache_FailingYearFallsBack(t *testing.T) {
	src := newFakeSource()
	src.dates[2024] = []time.Time{date(2024, 9, 16)}
	src.failFor[2025] = true

	c := NewCache(src, time.Hour)
	cal := c.Load(context.Background(), 2024, 2025)

	assert.True(t, cal.IsHoliday(date(2024, 9, 16)))
	assert.False(t, cal.IsHoliday(date(2024, 11, 4)), "2024 is not served from fallback")
	assert.True(t, cal.IsHoliday(date(2025, 11, 3)))
	assert.True(t, cal.IsHoliday(date(2025, 2, 11)))
	assert.False(t, cal.IsHoliday(date(2025, 2, 12)))
}

func TestCache_CancelledLoadIsNotShared(t *testing.T) {
	src := newFakeSource()
	src.dates[2024] = []time.Time{date(2024, 3, 20)}
	c := NewCache(src, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cal := c.Load(ctx, 2024)
	assert.True(t, cal.IsHoliday(date(2024, 11, 23)), "cancelled call still gets the fallback list")

	cal = c.Load(context.Background(), 2024)
	assert.True(t, cal.IsHoliday(date(2024, 3, 20)))
	assert.False(t, cal.IsHoliday(date(2024, 11, 23)))
	assert.Equal(t, 2, src.callCount(2024))
}

func TestCache_CancelledRefreshKeepsCachedDates(t *testing.T) {
	src := newFakeSource()
	src.dates[2024] = []time.Time{date(2024, 3, 20)}
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache(src, time.Hour)
	c.now = func() time.Time { return now }

	c.Load(context.Background(), 2024)
	now = now.Add(2 * time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cal := c.Load(ctx, 2024)
	assert.True(t, cal.IsHoliday(date(2024, 3, 20)))

	c.Load(context.Background(), 2024)
	assert.Equal(t, 3, src.callCount(2024), "expired entry is still refetched")
}

func TestCache_FailedRefreshKeepsPreviousDates(t *testing.T) {
	src := newFakeSource()
	src.dates[2024] = []time.Time{date(2024, 3, 20)}
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache(src, time.Hour)
	c.now = func() time.Time { return now }

	c.Load(context.Background(), 2024)

	src.setFailing(2024, true)
	now = now.Add(2 * time.Hour)
	cal := c.Load(context.Background(), 2024)
	assert.True(t, cal.IsHoliday(date(2024, 3, 20)))
	assert.False(t, cal.IsHoliday(date(2024, 11, 23)), "fixed list not mixed in")
	assert.Equal(t, 2, src.callCount(2024))

	// retried after the short degraded TTL, not the full one
	src.setFailing(2024, false)
	now = now.Add(2 * time.Minute)
	c.Load(context.Background(), 2024)
	assert.Equal(t, 3, src.callCount(2024))
}

func TestCache_ReusesFreshEntries(t *testing.T) {
	src := newFakeSource()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	c := NewCache(src, time.Hour)
	c.now = func() time.Time { return now }

	c.Load(context.Background(), 2024)
	c.Load(context.Background(), 2024)
	assert.Equal(t, 1, src.callCount(2024))

	now = now.Add(time.Hour)
	c.Load(context.Background(), 2024)
	assert.Equal(t, 2, src.callCount(2024))
}

func TestCache_FallbackRetriedSooner(t *testing.T) {
	src := newFakeSource()
	src.failFor[2024] = true
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	c := NewCache(src, 24*time.Hour)
	c.now = func() time.Time { return now }

	c.Load(context.Background(), 2024)
	now = now.Add(2 * time.Minute)
	c.Load(context.Background(), 2024)
	assert.Equal(t, 2, src.callCount(2024))
}

func TestCache_ConcurrentLoads(t *testing.T) {
	src := newFakeSource()
	src.dates[2024] = []time.Time{date(2024, 1, 8)}
	c := NewCache(src, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cal := c.Load(context.Background(), 2023, 2024, 2025)
			assert.True(t, cal.IsHoliday(date(2024, 1, 8)))
		}()
	}
	wg.Wait()
}

func TestCache_Holidays(t *testing.T) {
	src := newFakeSource()
	src.dates[2024] = []time.Time{date(2024, 5, 6), date(2024, 1, 1)}
	c := NewCache(src, time.Hour)

	got := c.Holidays(context.Background(), 2024)
	require.Len(t, got, 2)
	assert.Equal(t, date(2024, 1, 1), got[0])
	assert.Equal(t, date(2024, 5, 6), got[1])
}

func TestCache_Warm(t *testing.T) {
	src := newFakeSource()
	c := NewCache(src, time.Hour)
	c.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, c.Warm(context.Background()))
	assert.Equal(t, 1, src.callCount(2023))
	assert.Equal(t, 1, src.callCount(2024))
	assert.Equal(t, 1, src.callCount(2025))
}

func TestYearsForPeriods(t *testing.T) {
	jan, err := worktime.ResolvePayPeriod(employee.CutoffType10, "2024-01")
	require.NoError(t, err)
	mar, err := worktime.ResolvePayPeriod(employee.CutoffType20, "2024-03")
	require.NoError(t, err)

	assert.Equal(t, []int{2022, 2023, 2024, 2025}, YearsForPeriod(jan))
	assert.Equal(t, []int{2023, 2024, 2025}, YearsForPeriod(mar))
	assert.Equal(t, []int{2022, 2023, 2024, 2025}, YearsForPeriods(jan, mar))
}

func TestFallbackHolidays(t *testing.T) {
	dates := FallbackHolidays(2030)
	require.Len(t, dates, 10)
	assert.Equal(t, date(2030, 1, 1), dates[0])
	assert.Equal(t, date(2030, 11, 23), dates[9])
}
