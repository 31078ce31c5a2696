package worktime

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
)

// Interval is a record's credited work span after schedule adjustment.
// Start/End are raw adjusted minutes used for net duration; BucketStart and
// BucketEnd are the same endpoints snapped to the half hour for window
// classification. End values exceed 1440 when the span crosses midnight.
type Interval struct {
	CheckIn     clock.Clock
	CheckOut    clock.Clock
	Start       int
	End         int
	BucketStart int
	BucketEnd   int
}

// DurationMinutes is the raw adjusted length.
func (i Interval) DurationMinutes() int {
	return i.End - i.Start
}

// BucketMinutes is the half-hour snapped length.
func (i Interval) BucketMinutes() int {
	return i.BucketEnd - i.BucketStart
}

// AdjustInterval applies schedule rules to the actual times.
// Late arrival is rounded up to the next half hour and early arrival is
// clamped to the schedule. Departure after the schedule is rounded down.
// A record is overnight only when its actual departure is not after its
// actual arrival.
func AdjustInterval(actualIn, actualOut string, scheduledIn, scheduledOut *string) (Interval, error) {
	in, err := clock.Parse(actualIn)
	if err != nil {
		return Interval{}, err
	}
	out, err := clock.Parse(actualOut)
	if err != nil {
		return Interval{}, err
	}
	sameDay := out.Minutes() > in.Minutes()

	if scheduledIn != nil && *scheduledIn != "" {
		sIn, err := clock.Parse(*scheduledIn)
		if err != nil {
			return Interval{}, err
		}
		switch {
		case in.After(sIn):
			in = in.RoundUp()
		case in.Before(sIn):
			in = sIn
		}
	}

	if scheduledOut != nil && *scheduledOut != "" {
		sOut, err := clock.Parse(*scheduledOut)
		if err != nil {
			return Interval{}, err
		}
		if out.After(sOut) {
			out = out.RoundDown()
		}
	}

	// A same-day record whose adjusted arrival lands on or after its
	// departure credits nothing instead of wrapping past midnight.
	if sameDay && out.Minutes() <= in.Minutes() {
		m, b := in.Minutes(), in.RoundNearest().Minutes()
		return Interval{CheckIn: in, CheckOut: out, Start: m, End: m, BucketStart: b, BucketEnd: b}, nil
	}

	start, end := span(in, out)

	// Snapped endpoints follow the raw crossing so a short span such as
	// 09:00-09:20 snaps to an empty interval, not a full day.
	bucketStart := in.RoundNearest().Minutes()
	bucketEnd := out.RoundNearest().Minutes()
	if out.Minutes() <= in.Minutes() {
		bucketEnd += clock.MinutesPerDay
	}

	return Interval{
		CheckIn:     in,
		CheckOut:    out,
		Start:       start,
		End:         end,
		BucketStart: bucketStart,
		BucketEnd:   bucketEnd,
	}, nil
}

func span(in, out clock.Clock) (int, int) {
	start, end := in.Minutes(), out.Minutes()
	if end <= start {
		end += clock.MinutesPerDay
	}
	return start, end
}

// BreakMinutes reads an optional "HH:MM" break length. Missing or
// malformed values count as no break.
func BreakMinutes(breakTime *string) int {
	if breakTime == nil || *breakTime == "" {
		return 0
	}
	m, err := clock.DurationMinutes(*breakTime)
	if err != nil {
		return 0
	}
	return m
}

// CalculateWorkHours returns the net hours of a record: adjusted duration
// minus break, never negative.
func CalculateWorkHours(actualIn, actualOut string, scheduledIn, scheduledOut, breakTime *string) (float64, error) {
	iv, err := AdjustInterval(actualIn, actualOut, scheduledIn, scheduledOut)
	if err != nil {
		return 0, err
	}
	net := iv.DurationMinutes() - BreakMinutes(breakTime)
	if net < 0 {
		net = 0
	}
	return minutesToHours(net), nil
}

func minutesToHours(m int) float64 {
	return float64(m) / 60.0
}
