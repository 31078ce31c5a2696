package holiday

import (
	"context"
	"time"
)

// Source supplies the public holidays of a calendar year.
// Implementations are network-bound and may fail.
type Source interface {
	FetchHolidays(ctx context.Context, year int) ([]time.Time, error)
}

// Calendar answers whether a business date is a non-working day.
type Calendar interface {
	IsHoliday(date time.Time) bool
}

// CalendarLoader builds a Calendar covering the requested years. Loading
// never fails: years whose source fetch fails are served from a fallback.
type CalendarLoader interface {
	Load(ctx context.Context, years ...int) Calendar
}

// Service exposes the cached holiday calendar.
type Service interface {
	CalendarLoader

	// Holidays lists the public holidays of a year, ascending.
	Holidays(ctx context.Context, year int) []time.Time
}
