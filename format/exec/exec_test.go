package exec

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theory/dtformat/format/ast"
	"github.com/theory/dtformat/format/calendar"
	"github.com/theory/dtformat/format/holiday"
	"github.com/theory/dtformat/format/parser"
	"github.com/theory/dtformat/format/types"
)

func mustParse(t *testing.T, tmpl string) *ast.Template {
	t.Helper()
	parsed, err := parser.Parse(tmpl)
	require.NoError(t, err)
	return parsed
}

func TestRender(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	base := types.MustTimestamp(2005, time.March, 1, 23, 59, 59, 111000)
	friday := types.MustTimestamp(2005, time.March, 4, 0, 0, 0, 0)
	saturday := types.MustTimestamp(2005, time.March, 5, 0, 0, 0, 0)
	july := types.MustTimestamp(2021, time.July, 6, 12, 0, 0, 0)
	zoned := types.FromTime(time.Date(2005, 3, 1, 5, 0, 0, 0, time.FixedZone("", -5*3600)))

	for _, tc := range []struct {
		name string
		tmpl string
		ts   types.Timestamp
		opts []Option
		exp  string
	}{
		{
			name: "literal_only",
			tmpl: "no fields here",
			ts:   base,
			exp:  "no fields here",
		},
		{
			name: "plain_fields",
			tmpl: "%DATE% %HHMMSSZZ%",
			ts:   base,
			exp:  "2005-03-01 23:59:59.111000",
		},
		{
			name: "plus_minute_crosses_day",
			tmpl: "%YYYYMMDD-P1M%",
			ts:   base,
			exp:  "20050302",
		},
		{
			name: "plus_micros_carries",
			tmpl: "%HHMMSSZZ-P889000Z%",
			ts:   base,
			exp:  "00:00:00.000000",
		},
		{
			name: "minus_hour",
			tmpl: "%HHMMSS-M1H%",
			ts:   base,
			exp:  "22:59:59",
		},
		{
			name: "chained_directives",
			tmpl: "%DATE-P1D-M2D%",
			ts:   base,
			exp:  "2005-02-28",
		},
		{
			name: "directives_per_field",
			tmpl: "%DATE-M1m% to %DATE%",
			ts:   base,
			exp:  "2005-02-01 to 2005-03-01",
		},
		{
			name: "business_day_no_holidays",
			tmpl: "%DATE-M1B%",
			ts:   july,
			exp:  "2021-07-05",
		},
		{
			name: "business_day_observed_holiday",
			tmpl: "%DATE-M1B%",
			ts:   july,
			opts: []Option{WithHolidays(holiday.Federal{})},
			exp:  "2021-07-02",
		},
		{
			name: "day_snaps_past_weekend",
			tmpl: "%DATE-P1D%",
			ts:   friday,
			opts: []Option{WithHolidays(holiday.NewSet())},
			exp:  "2005-03-07",
		},
		{
			name: "day_without_weekend_snap",
			tmpl: "%DATE-P1D%",
			ts:   friday,
			opts: []Option{WithHolidays(holiday.NewSet()), WithWeekendSnap(false)},
			exp:  "2005-03-05",
		},
		{
			name: "zero_business_days_snap",
			tmpl: "%DATE-P0B%",
			ts:   saturday,
			exp:  "2005-03-07",
		},
		{
			name: "zero_business_days_noop",
			tmpl: "%DATE-P0B%",
			ts:   saturday,
			opts: []Option{WithZeroBusinessDays(calendar.ZeroNoop)},
			exp:  "2005-03-05",
		},
		{
			name: "args",
			tmpl: "{} scheduled for %DATE% by {1}",
			ts:   base,
			opts: []Option{WithArgs("Job", "ops")},
			exp:  "Job scheduled for 2005-03-01 by ops",
		},
		{
			name: "args_formatted_with_v",
			tmpl: "{0}|{1}|{2}|{0}",
			ts:   base,
			opts: []Option{WithArgs(42, 1.5, base)},
			exp:  "42|1.5|2005-03-01T23:59:59.111|42",
		},
		{
			name: "extra_args_ignored",
			tmpl: "{}",
			ts:   base,
			opts: []Option{WithArgs("a", "b")},
			exp:  "a",
		},
		{
			name: "escaped_braces",
			tmpl: "{{%DATE%}}",
			ts:   base,
			exp:  "{2005-03-01}",
		},
		{
			name: "tz_name",
			tmpl: "%HHMMSS%",
			ts:   zoned,
			opts: []Option{WithTZ("utc")},
			exp:  "10:00:00",
		},
		{
			name: "tz_offset",
			tmpl: "%HHMM% %TZ%",
			ts:   zoned,
			opts: []Option{WithTZ("+05:30")},
			exp:  "15:30 +05:30",
		},
		{
			name: "location_after_translation",
			tmpl: "%DATETIME-P1H% %TZ%",
			ts:   zoned,
			opts: []Option{WithLocation(time.FixedZone("JST", 9*3600))},
			exp:  "2005-03-01 20:00:00 +09:00",
		},
		{
			name: "empty_tz_disables",
			tmpl: "%HHMMSS% %TZ%",
			ts:   zoned,
			opts: []Option{WithLocation(time.UTC), WithTZ("")},
			exp:  "05:00:00 -05:00",
		},
		{
			name: "naive_tz_empty",
			tmpl: "[%TZ%]",
			ts:   base,
			exp:  "[]",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res, err := Render(ctx, mustParse(t, tc.tmpl), tc.ts, tc.opts...)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, res)
		})
	}
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	base := types.MustTimestamp(2005, time.March, 1, 23, 59, 59, 111000)
	friday := types.MustTimestamp(2005, time.March, 4, 0, 0, 0, 0)
	closed := holiday.NewSet()
	for day := 7; day <= 11; day++ {
		closed.Add(time.Date(2005, time.March, day, 0, 0, 0, 0, time.UTC), "closed")
	}

	for _, tc := range []struct {
		name string
		tmpl string
		ts   types.Timestamp
		opts []Option
		err  string
		is   error
	}{
		{
			name: "naive_to_zone",
			tmpl: "%HHMMSS%",
			ts:   base,
			opts: []Option{WithTZ("UTC")},
			err:  "format time zone: cannot convert 2005-03-01T23:59:59.111 without time zone to UTC",
			is:   types.ErrTimeZone,
		},
		{
			name: "naive_to_zone_no_fields",
			tmpl: "nothing",
			ts:   base,
			opts: []Option{WithLocation(time.UTC)},
			err:  "format time zone: cannot convert 2005-03-01T23:59:59.111 without time zone to UTC",
			is:   types.ErrTimeZone,
		},
		{
			name: "unknown_zone",
			tmpl: "%HHMMSS%",
			ts:   base,
			opts: []Option{WithTZ("not_a_tz")},
			err:  `format time zone: unknown time zone "not_a_tz"`,
			is:   types.ErrTimeZone,
		},
		{
			name: "missing_arg",
			tmpl: "%DATE% {} {2}",
			ts:   base,
			opts: []Option{WithArgs("x")},
			err:  "format: template references argument {2} but only 1 provided",
			is:   types.ErrFormat,
		},
		{
			name: "no_args",
			tmpl: "{}",
			ts:   base,
			err:  "format: template references argument {} but only 0 provided",
			is:   types.ErrFormat,
		},
		{
			name: "year_out_of_range",
			tmpl: "%DATE-P9000Y%",
			ts:   base,
			err:  "format: year 11005 out of range [1, 9999]",
			is:   types.ErrFormat,
		},
		{
			name: "search_window",
			tmpl: "%DATE-P1B%",
			ts:   friday,
			opts: []Option{WithHolidays(closed), WithSearchWindow(3)},
			err:  "format: no business day within 3 days walking from 2005-03-04T00:00:00",
			is:   types.ErrFormat,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)
			res, err := Render(ctx, mustParse(t, tc.tmpl), tc.ts, tc.opts...)
			r.EqualError(err, tc.err)
			r.ErrorIs(err, tc.is)
			r.Empty(res)
		})
	}
}

func TestRenderCanceled(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ts := types.MustTimestamp(2005, time.March, 1, 0, 0, 0, 0)
	res, err := Render(ctx, mustParse(t, "%DATE%"), ts)
	r.ErrorIs(err, context.Canceled)
	r.Empty(res)
}

func TestRenderLogger(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return attr
		},
	}))

	ts := types.MustTimestamp(2005, time.March, 1, 23, 59, 59, 111000)
	res, err := Render(
		context.Background(), mustParse(t, "%DATE-M1D-P1m%"), ts,
		WithLogger(logger),
	)
	r.NoError(err)
	a.Equal("2005-03-28", res)
	a.Equal(
		`level=DEBUG msg="translated timestamp" field=DATE directive=M1D from=2005-03-01T23:59:59.111 to=2005-02-28T23:59:59.111`+"\n"+
			`level=DEBUG msg="translated timestamp" field=DATE directive=P1m from=2005-02-28T23:59:59.111 to=2005-03-28T23:59:59.111`+"\n",
		buf.String(),
	)
}
