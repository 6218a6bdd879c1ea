package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadZone(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		zone   string
		offset int
		err    string
	}{
		{name: "utc", zone: "utc", offset: 0},
		{name: "UTC", zone: "UTC", offset: 0},
		{name: "z", zone: "Z", offset: 0},
		{name: "plus_hh", zone: "+05", offset: 5 * secondsPerHour},
		{name: "minus_hhmm", zone: "-0800", offset: -8 * secondsPerHour},
		{name: "colon", zone: "+05:30", offset: 5*secondsPerHour + 30*secondsPerMinute},
		{name: "padded", zone: " -03:00 ", offset: -3 * secondsPerHour},
		{name: "iana", zone: "Asia/Tokyo", offset: 9 * secondsPerHour},
		{name: "empty", zone: "", err: "format time zone: empty time zone name"},
		{name: "unknown", zone: "not_a_tz", err: `format time zone: unknown time zone "not_a_tz"`},
		{name: "bad_hours", zone: "+24", err: `format time zone: invalid UTC offset "+24"`},
		{name: "bad_minutes", zone: "+01:60", err: `format time zone: invalid UTC offset "+01:60"`},
		{name: "bad_width", zone: "+123", err: `format time zone: invalid UTC offset "+123"`},
		{name: "letters", zone: "+ab", err: `format time zone: invalid UTC offset "+ab"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			loc, err := LoadZone(tc.zone)
			if tc.err != "" {
				r.EqualError(err, tc.err)
				r.ErrorIs(err, ErrTimeZone)
				a.Nil(loc)
				return
			}
			r.NoError(err)
			r.NotNil(loc)
			_, off := time.Date(2005, 1, 1, 0, 0, 0, 0, loc).Zone()
			a.Equal(tc.offset, off)
		})
	}
}

func TestLoadZoneLocal(t *testing.T) {
	t.Parallel()
	loc, err := LoadZone("Local")
	require.NoError(t, err)
	//nolint:gosmopolitan
	assert.Equal(t, time.Local, loc)
}

func TestToday(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	day := today(fixedContext())
	a.Equal(ts(2021, 6, 15, 0, 0, 0, 0), day)
	a.False(day.Zoned())
}
