package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MinutesPerDay      = 24 * 60
	halfHourMinutes    = 30
	minutesPerHourUnit = 60
	secondsPerMinute   = 60
)

var ErrInvalidClock = errors.New("clock time must be in HH:MM or HH:MM:SS format")

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// Parse reads "HH:MM" or "HH:MM:SS". Seconds are validated and then dropped.
func Parse(s string) (Clock, error) {
	hour, minute, _, err := parse(s)
	if err != nil {
		return Clock{}, err
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// SecondsOfDay reads "HH:MM" or "HH:MM:SS" as seconds since midnight.
func SecondsOfDay(s string) (int, error) {
	hour, minute, second, err := parse(s)
	if err != nil {
		return 0, err
	}
	return (hour*minutesPerHourUnit+minute)*secondsPerMinute + second, nil
}

func parse(s string) (hour, minute, second int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if len(parts) == 3 {
		second, err = strconv.Atoi(parts[2])
		if err != nil || second < 0 || second > 59 {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}
	return hour, minute, second, nil
}

// FromMinutes builds a Clock from minutes since midnight, wrapping past 24h.
func FromMinutes(m int) Clock {
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return Clock{Hour: m / minutesPerHourUnit, Minute: m % minutesPerHourUnit}
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*minutesPerHourUnit + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) Before(o Clock) bool { return c.Minutes() < o.Minutes() }
func (c Clock) After(o Clock) bool  { return c.Minutes() > o.Minutes() }

// RoundNearest snaps to the half hour the minute falls in: 0-29 -> :00, 30-59 -> :30.
func (c Clock) RoundNearest() Clock {
	if c.Minute < halfHourMinutes {
		return Clock{Hour: c.Hour}
	}
	return Clock{Hour: c.Hour, Minute: halfHourMinutes}
}

// RoundUp moves to the next half-hour boundary. 23:31 and later wrap to 00:00.
func (c Clock) RoundUp() Clock {
	switch {
	case c.Minute == 0:
		return c
	case c.Minute <= halfHourMinutes:
		return Clock{Hour: c.Hour, Minute: halfHourMinutes}
	default:
		return FromMinutes((c.Hour + 1) * minutesPerHourUnit)
	}
}

// RoundDown moves to the previous half-hour boundary.
func (c Clock) RoundDown() Clock {
	if c.Minute < halfHourMinutes {
		return Clock{Hour: c.Hour}
	}
	return Clock{Hour: c.Hour, Minute: halfHourMinutes}
}

// RoundToNearestHalfHour formats the RoundNearest of s.
func RoundToNearestHalfHour(s string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return c.RoundNearest().String(), nil
}

// RoundUpToNearestHalfHour formats the RoundUp of s.
func RoundUpToNearestHalfHour(s string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return c.RoundUp().String(), nil
}

// RoundDownToNearestHalfHour formats the RoundDown of s.
func RoundDownToNearestHalfHour(s string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return c.RoundDown().String(), nil
}

// DurationMinutes reads an "HH:MM" duration such as a break length.
// Hours are not capped at 23 so long breaks still parse.
func DurationMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hours*minutesPerHourUnit + minutes, nil
}
