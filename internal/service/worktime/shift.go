package worktime

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
)

// Shift windows in minutes since midnight, half-open [start, end).
const (
	earlyStart = 7 * 60
	dayStart   = 9 * 60
	lateStart  = 18 * 60
	lateEnd    = 20 * 60

	stepMinutes = 30

	// NightShiftHours is the fixed credit for a night-shift record.
	NightShiftHours = 14.0

	holidayCapMinutes = 8 * 60
)

var (
	nightShiftIn  = clock.Clock{Hour: 16, Minute: 30}
	nightShiftOut = clock.Clock{Hour: 9, Minute: 30}
)

// Buckets holds classified hours of a single record.
type Buckets struct {
	Early float64
	Day   float64
	Late  float64
}

func (b Buckets) Total() float64 {
	return b.Early + b.Day + b.Late
}

// IsNightShift reports whether a record is a 16:30 -> 09:30 night shift.
// Each endpoint uses its scheduled time when set and the actual time
// otherwise; both are compared after rounding to the nearest half hour.
func IsNightShift(checkIn, checkOut string, scheduledIn, scheduledOut *string) bool {
	in, ok := pick(checkIn, scheduledIn)
	if !ok {
		return false
	}
	out, ok := pick(checkOut, scheduledOut)
	if !ok {
		return false
	}
	return in.RoundNearest() == nightShiftIn && out.RoundNearest() == nightShiftOut
}

func pick(actual string, scheduled *string) (clock.Clock, bool) {
	if scheduled != nil && *scheduled != "" {
		if c, err := clock.Parse(*scheduled); err == nil {
			return c, true
		}
	}
	c, err := clock.Parse(actual)
	return c, err == nil
}

// Classify splits an adjusted interval into early, day and late hours.
//
// Regular records are walked in half-hour steps and each step is credited
// to the window its start minute falls in; time outside the windows earns
// nothing. The break comes off the day bucket only. On a holiday with at
// least eight hours classified the day bucket shrinks so the sum is exactly
// eight.
//
// Special companies skip the walk: the whole interval less break is day
// time, capped at eight hours on a holiday.
func Classify(iv Interval, breakMinutes int, holiday, special bool) Buckets {
	if special {
		day := nonNegative(iv.BucketMinutes() - breakMinutes)
		if holiday && day >= holidayCapMinutes {
			day = holidayCapMinutes
		}
		return Buckets{Day: minutesToHours(day)}
	}

	var early, day, late int
	for m := iv.BucketStart; m < iv.BucketEnd; m += stepMinutes {
		seg := min(stepMinutes, iv.BucketEnd-m)
		switch w := m % clock.MinutesPerDay; {
		case w >= earlyStart && w < dayStart:
			early += seg
		case w >= dayStart && w < lateStart:
			day += seg
		case w >= lateStart && w < lateEnd:
			late += seg
		}
	}

	day = nonNegative(day - breakMinutes)

	if holiday && early+day+late >= holidayCapMinutes {
		day = nonNegative(holidayCapMinutes - early - late)
	}

	return Buckets{
		Early: minutesToHours(early),
		Day:   minutesToHours(day),
		Late:  minutesToHours(late),
	}
}

func nonNegative(m int) int {
	if m < 0 {
		return 0
	}
	return m
}
