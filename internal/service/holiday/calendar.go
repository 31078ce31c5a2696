package holiday

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// Calendar is an immutable holiday set.
type Calendar struct {
	dates map[string]struct{}
}

// NewCalendar builds a calendar from explicit dates.
func NewCalendar(dates ...time.Time) *Calendar {
	cal := &Calendar{dates: make(map[string]struct{}, len(dates))}
	for _, d := range dates {
		cal.dates[d.Format(dateLayout)] = struct{}{}
	}
	return cal
}

// IsHoliday reports Sundays and listed public holidays. Saturdays are
// working days unless listed.
func (c *Calendar) IsHoliday(date time.Time) bool {
	if date.Weekday() == time.Sunday {
		return true
	}
	_, ok := c.dates[date.Format(dateLayout)]
	return ok
}

// Dates returns the listed public holidays in year, ascending.
func (c *Calendar) Dates(year int) []time.Time {
	var out []time.Time
	for key := range c.dates {
		d, err := time.Parse(dateLayout, key)
		if err != nil || d.Year() != year {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

var fallbackMonthDays = [][2]int{
	{1, 1},   // New Year's Day
	{2, 11},  // National Foundation Day
	{2, 23},  // Emperor's Birthday
	{4, 29},  // Showa Day
	{5, 3},   // Constitution Memorial Day
	{5, 4},   // Greenery Day
	{5, 5},   // Children's Day
	{8, 11},  // Mountain Day
	{11, 3},  // Culture Day
	{11, 23}, // Labor Thanksgiving Day
}

// FallbackHolidays returns the fixed-date national holidays of year.
func FallbackHolidays(year int) []time.Time {
	dates := make([]time.Time, 0, len(fallbackMonthDays))
	for _, md := range fallbackMonthDays {
		dates = append(dates, time.Date(year, time.Month(md[0]), md[1], 0, 0, 0, 0, time.UTC))
	}
	return dates
}
