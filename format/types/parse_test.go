package types

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedContext returns a Context whose clock always returns
// 2021-06-15T09:30:00Z.
func fixedContext() context.Context {
	return ContextWithClock(context.Background(), func() time.Time {
		return time.Date(2021, 6, 15, 9, 30, 0, 0, time.UTC)
	})
}

func ts(year int, month time.Month, day, hour, minute, second, micro int) Timestamp {
	return MustTimestamp(year, month, day, hour, minute, second, micro)
}

func TestParseString(t *testing.T) {
	t.Parallel()
	ctx := fixedContext()

	for _, tc := range []struct {
		name string
		src  string
		exp  Timestamp
		err  string
	}{
		{name: "yyyymmdd", src: "20050301", exp: ts(2005, 3, 1, 0, 0, 0, 0)},
		{name: "yyyymm", src: "200503", exp: ts(2005, 3, 1, 0, 0, 0, 0)},
		{name: "hhmmss", src: "184530", exp: ts(2021, 6, 15, 18, 45, 30, 0)},
		{name: "iso_date", src: "2005-03-01", exp: ts(2005, 3, 1, 0, 0, 0, 0)},
		{name: "slash_date", src: "2005/03/01", exp: ts(2005, 3, 1, 0, 0, 0, 0)},
		{name: "us_date", src: "03-01-2005", exp: ts(2005, 3, 1, 0, 0, 0, 0)},
		{name: "us_slash_date", src: "03/01/2005", exp: ts(2005, 3, 1, 0, 0, 0, 0)},
		{name: "eu_date", src: "25-10-2005", exp: ts(2005, 10, 25, 0, 0, 0, 0)},
		{name: "ambiguous", src: "10-01-2005", exp: ts(2005, 10, 1, 0, 0, 0, 0)},
		{name: "pivot_2000s", src: "10-01-65", exp: ts(2065, 10, 1, 0, 0, 0, 0)},
		{name: "pivot_1900s", src: "10-01-66", exp: ts(1966, 10, 1, 0, 0, 0, 0)},
		{name: "short_year_slash", src: "3/1/05", exp: ts(2005, 3, 1, 0, 0, 0, 0)},
		{name: "iso_datetime", src: "2005-03-01T23:59:59", exp: ts(2005, 3, 1, 23, 59, 59, 0)},
		{name: "iso_space", src: "2005-03-01 23:59:59", exp: ts(2005, 3, 1, 23, 59, 59, 0)},
		{name: "iso_no_seconds", src: "2005-03-01 23:59", exp: ts(2005, 3, 1, 23, 59, 0, 0)},
		{name: "iso_fraction", src: "2005-03-01 23:59:59.111", exp: ts(2005, 3, 1, 23, 59, 59, 111000)},
		{name: "iso_micro", src: "2005-03-01 23:59:59.123456", exp: ts(2005, 3, 1, 23, 59, 59, 123456)},
		{name: "trimmed", src: "  2005-03-01  ", exp: ts(2005, 3, 1, 0, 0, 0, 0)},
		{name: "clock", src: "18:30", exp: ts(2021, 6, 15, 18, 30, 0, 0)},
		{name: "clock_seconds", src: "8:30:11", exp: ts(2021, 6, 15, 8, 30, 11, 0)},
		{name: "clock_fraction", src: "08:30:11.5", exp: ts(2021, 6, 15, 8, 30, 11, 500000)},
		{name: "date_compact_time", src: "2005-03-01 83011", exp: ts(2005, 3, 1, 8, 30, 11, 0)},
		{name: "int_date_compact_time", src: "20050301 183011", exp: ts(2005, 3, 1, 18, 30, 11, 0)},
		{name: "int_date_clock", src: "20050301 18:30", exp: ts(2005, 3, 1, 18, 30, 0, 0)},
		{name: "us_date_clock", src: "03/01/2005 18:30:11", exp: ts(2005, 3, 1, 18, 30, 11, 0)},
		{
			name: "empty",
			src:  "  ",
			err:  "format: empty datetime string",
		},
		{
			name: "three_digits",
			src:  "101",
			err:  "format: invalid date format used, could not find split char in (101), format must be one of: ",
		},
		{
			name: "two_digits",
			src:  "25",
			err:  "format: invalid date format used, could not find split char in (25), format must be one of: ",
		},
		{
			name: "bad_six_digits",
			src:  "113161",
			err:  "format: invalid date format used, could not find split char in (113161), format must be one of: ",
		},
		{
			name: "three_parts",
			src:  "20050102 18:30 11",
			err:  "format: invalid time format used (20050102 18:30 11), must be HH:MM[:SS[.ffffff]]",
		},
		{
			name: "year_month_clock",
			src:  "2005-03 08:03:30",
			err:  "format: invalid date format used (2005-03), must be one of: ",
		},
		{
			name: "bad_hour",
			src:  "2005-03-01 25:03:30",
			err:  `format: hour 25 out of range [0, 23] (parsing "2005-03-01 25:03:30")`,
		},
		{
			name: "long_fraction",
			src:  "2005-03-01 23:59:59.1234567",
			err:  `format: fractional seconds in "2005-03-01 23:59:59.1234567" exceed 6 digits`,
		},
		{
			name: "bad_day",
			src:  "2005-02-30",
			err:  `format: day 30 out of range [1, 28] for 2005-02 (parsing "2005-02-30")`,
		},
		{
			name: "bad_us_day",
			src:  "02/30/2005",
			err:  `format: day 30 out of range [1, 28] for 2005-02 (parsing "02/30/2005")`,
		},
		{
			name: "bad_clock",
			src:  "25:00",
			err:  `format: hour 25 out of range [0, 23] (parsing "25:00")`,
		},
		{
			name: "clock_garbage",
			src:  "1:2:3",
			err:  "format: invalid time format used (1:2:3), must be HH:MM[:SS[.ffffff]]",
		},
		{
			name: "non_numeric",
			src:  "aa-bb-cc",
			err:  "format: invalid date format used (aa-bb-cc), fields must be numeric",
		},
		{
			name: "bad_year_width",
			src:  "1-2-345",
			err:  "format: invalid date format used (1-2-345), must be one of: ",
		},
		{
			name: "bad_compact_time",
			src:  "2005-03-01 2500",
			err:  "format: hour 25 out of range [0, 23] (parsing 2500)",
		},
		{
			name: "bad_time_part",
			src:  "2005-03-01 noon",
			err:  `format: invalid time "noon" in "2005-03-01 noon"`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			res, err := ParseString(ctx, tc.src)
			if tc.err == "" {
				r.NoError(err)
				a.Equal(tc.exp, res)
				a.False(res.Zoned())
				return
			}
			r.ErrorIs(err, ErrFormat)
			r.ErrorContains(err, tc.err)
			a.Equal(Timestamp{}, res)
		})
	}
}

func TestParseStringZoned(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		src    string
		offset int
		str    string
	}{
		{"utc", "2005-03-01T05:00:00Z", 0, "2005-03-01T05:00:00Z"},
		{"lower_z", "2005-03-01t05:00:00z", 0, "2005-03-01T05:00:00Z"},
		{"negative_zero", "2005-03-01T05:00:00-00:00", 0, "2005-03-01T05:00:00Z"},
		{"est", "2005-03-01T05:00:00-05:00", -5 * secondsPerHour, "2005-03-01T05:00:00-05:00"},
		{"compact", "2005-03-01T05:00:00+0530", 5*secondsPerHour + 30*secondsPerMinute, "2005-03-01T05:00:00+05:30"},
		{"hours", "2005-03-01 05:00+01", secondsPerHour, "2005-03-01T05:00:00+01:00"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			res, err := ParseString(context.Background(), tc.src)
			r.NoError(err)
			a.True(res.Zoned())
			_, off := res.GoTime().Zone()
			a.Equal(tc.offset, off)
			a.Equal(tc.str, res.String())
		})
	}

	_, err := ParseString(context.Background(), "2005-03-01T05:00:00+25:00")
	require.EqualError(t, err, `format: invalid UTC offset in "2005-03-01T05:00:00+25:00"`)
	require.ErrorIs(t, err, ErrFormat)
	require.NotErrorIs(t, err, ErrTimeZone)
}

func TestParserPivot(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)
	ctx := context.Background()

	p := NewParser(WithPivot(30))
	res, err := p.ParseString(ctx, "01-02-31")
	r.NoError(err)
	a.Equal(ts(1931, 1, 2, 0, 0, 0, 0), res)

	res, err = p.ParseString(ctx, "01-02-30")
	r.NoError(err)
	a.Equal(ts(2030, 1, 2, 0, 0, 0, 0), res)
}

type converter struct {
	ts  Timestamp
	err error
}

func (c converter) ToTimestamp() (Timestamp, error) { return c.ts, c.err }

func TestParse(t *testing.T) {
	t.Parallel()
	ctx := fixedContext()
	est := time.FixedZone("", -5*secondsPerHour)
	goTime := time.Date(2005, 3, 1, 23, 59, 59, 111000000, est)
	zoned := FromTime(goTime)

	for _, tc := range []struct {
		name  string
		value Value
		exp   Timestamp
		err   string
	}{
		{"int", Int(20050301), ts(2005, 3, 1, 0, 0, 0, 0), ""},
		{"text", Text("2005-03-01"), ts(2005, 3, 1, 0, 0, 0, 0), ""},
		{"date", Date{goTime}, ts(2005, 3, 1, 0, 0, 0, 0), ""},
		{"datetime", DateTime{goTime}, zoned, ""},
		{"time_of_day", TimeOfDay{goTime}, ts(2021, 6, 15, 23, 59, 59, 111000), ""},
		{"now", Now{}, ts(2021, 6, 15, 9, 30, 0, 0), ""},
		{"timestamp", zoned, zoned, ""},
		{"convert", Convert{converter{ts: zoned}}, zoned, ""},
		{"convert_err", Convert{converter{err: errors.New("oops")}}, Timestamp{}, "format: oops"},
		{"convert_nil", Convert{}, Timestamp{}, "format: nil converter"},
		{"nil", nil, Timestamp{}, "format: unsupported value <nil>"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			res, err := Parse(ctx, tc.value)
			if tc.err == "" {
				r.NoError(err)
				a.Equal(tc.exp, res)
				return
			}
			r.EqualError(err, tc.err)
			r.ErrorIs(err, ErrFormat)
		})
	}
}

func TestParseNowDefaultClock(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	before := time.Now()
	res, err := Parse(context.Background(), Now{})
	r.NoError(err)
	after := time.Now()
	a.False(res.Zoned())
	a.False(res.Compare(Naive(before.Truncate(time.Microsecond))) < 0)
	a.False(res.Compare(Naive(after)) > 0)
}
