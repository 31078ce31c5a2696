package clock

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  Clock
		ok    bool
	}{
		{"09:10", Clock{9, 10}, true},
		{"9:05", Clock{9, 5}, true},
		{"23:59:59", Clock{23, 59}, true},
		{"00:00:00", Clock{0, 0}, true},
		{"24:00", Clock{}, false},
		{"12:60", Clock{}, false},
		{"12:30:61", Clock{}, false},
		{"1230", Clock{}, false},
		{"", Clock{}, false},
		{"ab:cd", Clock{}, false},
	}
	for _, c := range cases {
		got, err := Parse(c.input)
		if !c.ok {
			assert.ErrorIs(t, err, ErrInvalidClock, "Parse(%q)", c.input)
			continue
		}
		require.NoError(t, err, "Parse(%q)", c.input)
		assert.Equal(t, c.want, got, "Parse(%q)", c.input)
	}
}

func TestRoundToNearestHalfHour(t *testing.T) {
	cases := map[string]string{
		"09:00":    "09:00",
		"09:29":    "09:00",
		"09:30":    "09:30",
		"09:59":    "09:30",
		"16:44:59": "16:30",
		"00:15":    "00:00",
	}
	for input, want := range cases {
		got, err := RoundToNearestHalfHour(input)
		require.NoError(t, err)
		assert.Equal(t, want, got, "RoundToNearestHalfHour(%q)", input)
	}
}

func TestRoundToNearestHalfHour_Idempotent(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			input := fmt.Sprintf("%02d:%02d", h, m)
			once, err := RoundToNearestHalfHour(input)
			require.NoError(t, err)
			twice, err := RoundToNearestHalfHour(once)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "input %s", input)
		}
	}
}

func TestRoundUpToNearestHalfHour(t *testing.T) {
	cases := map[string]string{
		"09:00": "09:00",
		"09:01": "09:30",
		"09:10": "09:30",
		"09:30": "09:30",
		"09:31": "10:00",
		"09:59": "10:00",
		"23:45": "00:00",
	}
	for input, want := range cases {
		got, err := RoundUpToNearestHalfHour(input)
		require.NoError(t, err)
		assert.Equal(t, want, got, "RoundUpToNearestHalfHour(%q)", input)
	}
}

func TestRoundDownToNearestHalfHour(t *testing.T) {
	cases := map[string]string{
		"18:00": "18:00",
		"18:05": "18:00",
		"18:29": "18:00",
		"18:30": "18:30",
		"18:59": "18:30",
	}
	for input, want := range cases {
		got, err := RoundDownToNearestHalfHour(input)
		require.NoError(t, err)
		assert.Equal(t, want, got, "RoundDownToNearestHalfHour(%q)", input)
	}
}

func TestRoundingRejectsMalformed(t *testing.T) {
	_, err := RoundUpToNearestHalfHour("nope")
	assert.ErrorIs(t, err, ErrInvalidClock)
	_, err = RoundDownToNearestHalfHour("25:00")
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestFromMinutes(t *testing.T) {
	assert.Equal(t, Clock{9, 30}, FromMinutes(570))
	assert.Equal(t, Clock{9, 30}, FromMinutes(570+MinutesPerDay))
	assert.Equal(t, Clock{23, 0}, FromMinutes(-60))
}

func TestDurationMinutes(t *testing.T) {
	got, err := DurationMinutes("01:00")
	require.NoError(t, err)
	assert.Equal(t, 60, got)

	got, err = DurationMinutes("00:45:00")
	require.NoError(t, err)
	assert.Equal(t, 45, got)

	_, err = DurationMinutes("1h")
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestSecondsOfDay(t *testing.T) {
	got, err := SecondsOfDay("09:00")
	require.NoError(t, err)
	assert.Equal(t, 9*3600, got)

	got, err = SecondsOfDay("09:00:30")
	require.NoError(t, err)
	assert.Equal(t, 9*3600+30, got)

	_, err = SecondsOfDay("09:00:60")
	assert.ErrorIs(t, err, ErrInvalidClock)
}
