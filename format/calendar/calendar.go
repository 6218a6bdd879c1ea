// Package calendar translates Timestamps by signed offsets of calendar units,
// with support for business days and holiday calendars.
//
// Sub-day units add exact durations. Days and weeks add calendar days.
// Business days step one day at a time, counting only weekdays that are not
// holidays. Months and years jump once, clamping the day to the length of
// the target month. When a holiday calendar is supplied, day, week, month,
// and year translations that land on a holiday (or a weekend, unless
// disabled by [WithWeekendSnap]) snap to the nearest valid day.
package calendar

import (
	"fmt"
	"math"
	"time"

	"github.com/theory/dtformat/format/types"
)

// Holidays reports whether a date is a holiday. Implementations must only
// consider the date portion of the time.Time.
type Holidays interface {
	IsHoliday(date time.Time) bool
}

// DefaultSearchWindow is the default maximum number of consecutive days a
// snap or business day walk may pass over before failing.
const DefaultSearchWindow = 31

const (
	daysPerWeek    = 7
	monthsPerYear  = 12
	maxMonths      = types.MaxYear * monthsPerYear
	maxDays        = types.MaxYear * 366
	maxSearchLimit = maxDays
)

// Option specifies a Calendar option.
type Option func(*Calendar)

// WithHolidays configures the holiday calendar consulted by the Calendar.
// A nil value disables holiday handling.
func WithHolidays(h Holidays) Option {
	return func(c *Calendar) { c.holidays = h }
}

// WithWeekendSnap determines whether day, week, month, and year translations
// snap away from weekends as well as holidays. Enabled by default. Has no
// effect unless holidays are configured.
func WithWeekendSnap(ok bool) Option {
	return func(c *Calendar) { c.weekendSnap = ok }
}

// WithZeroBusinessDays sets the policy for zero business day translations.
// Defaults to [ZeroSnapForward].
func WithZeroBusinessDays(p ZeroPolicy) Option {
	return func(c *Calendar) { c.zero = p }
}

// WithSearchWindow sets the maximum number of consecutive non-business days
// a walk may pass over before failing. Values less than one are ignored.
func WithSearchWindow(days int) Option {
	return func(c *Calendar) {
		if days > 0 {
			c.window = min(days, maxSearchLimit)
		}
	}
}

// Calendar translates Timestamps. The zero value is not valid; use [New].
type Calendar struct {
	holidays    Holidays
	weekendSnap bool
	zero        ZeroPolicy
	window      int
}

// New creates a new Calendar configured by opt.
func New(opt ...Option) *Calendar {
	c := &Calendar{weekendSnap: true, window: DefaultSearchWindow}
	for _, o := range opt {
		o(c)
	}
	return c
}

// Translate translates ts by amount units using a Calendar configured by
// opt.
func Translate(ts types.Timestamp, unit Unit, amount int64, opt ...Option) (types.Timestamp, error) {
	return New(opt...).Translate(ts, unit, amount)
}

// Translate returns ts translated by amount units. Returns an error wrapping
// [types.ErrFormat] if the unit is unknown, the result falls outside the
// supported year range, or a walk cannot find a valid day within the search
// window.
func (c *Calendar) Translate(ts types.Timestamp, unit Unit, amount int64) (types.Timestamp, error) {
	if d, ok := unit.duration(); ok {
		return c.addDuration(ts, d, amount)
	}

	switch unit {
	case Day:
		return c.addDays(ts, amount)
	case Week:
		if amount > maxDays/daysPerWeek || amount < -maxDays/daysPerWeek {
			return types.Timestamp{}, outOfRange(ts, unit, amount)
		}
		return c.addDays(ts, amount*daysPerWeek)
	case BusinessDay:
		return c.addBusinessDays(ts, amount)
	case Month:
		return c.addMonths(ts, amount)
	case Year:
		if amount > maxMonths/monthsPerYear || amount < -maxMonths/monthsPerYear {
			return types.Timestamp{}, outOfRange(ts, unit, amount)
		}
		return c.addMonths(ts, amount*monthsPerYear)
	default:
		return types.Timestamp{}, fmt.Errorf("%w: unknown unit %v", types.ErrFormat, unit)
	}
}

// addDuration adds amount multiples of d to ts.
func (*Calendar) addDuration(ts types.Timestamp, d time.Duration, amount int64) (types.Timestamp, error) {
	if amount > math.MaxInt64/int64(d) || amount < math.MinInt64/int64(d) {
		return types.Timestamp{}, fmt.Errorf(
			"%w: cannot add %d intervals of %v to %v: out of range",
			types.ErrFormat, amount, d, ts,
		)
	}
	return ts.WithTime(ts.GoTime().Add(time.Duration(amount) * d))
}

// addDays adds amount calendar days to ts, then snaps to a valid day if
// holidays are configured.
func (c *Calendar) addDays(ts types.Timestamp, amount int64) (types.Timestamp, error) {
	if amount > maxDays || amount < -maxDays {
		return types.Timestamp{}, outOfRange(ts, Day, amount)
	}

	t := ts.GoTime().AddDate(0, 0, int(amount))
	if err := types.CheckYear(t.Year()); err != nil {
		return types.Timestamp{}, err
	}

	if c.holidays != nil {
		dir := 1
		if amount < 0 {
			dir = -1
		}
		var err error
		if t, err = c.snap(t, dir); err != nil {
			return types.Timestamp{}, err
		}
	}

	return ts.WithTime(t)
}

// snap walks from t one day at a time in dir until it finds a valid landing
// day, or fails after passing over the search window.
func (c *Calendar) snap(t time.Time, dir int) (time.Time, error) {
	start := t
	for range c.window + 1 {
		if !c.avoid(t) {
			return t, nil
		}
		t = t.AddDate(0, 0, dir)
	}
	return time.Time{}, fmt.Errorf(
		"%w: no valid day within %d days of %v",
		types.ErrFormat, c.window, start.Format(time.DateOnly),
	)
}

// addBusinessDays steps one day at a time in the direction of amount until
// it has passed over amount business days.
func (c *Calendar) addBusinessDays(ts types.Timestamp, amount int64) (types.Timestamp, error) {
	if amount > maxDays || amount < -maxDays {
		return types.Timestamp{}, outOfRange(ts, BusinessDay, amount)
	}

	t := ts.GoTime()
	if amount == 0 {
		if c.zero == ZeroNoop {
			return ts, nil
		}
		return c.walkBusiness(ts, t, 1, 0)
	}

	dir := 1
	if amount < 0 {
		dir, amount = -1, -amount
	}

	return c.walkBusiness(ts, t.AddDate(0, 0, dir), dir, amount-1)
}

// walkBusiness walks from t in dir, counting business days. It returns the
// business day found after passing over remaining business days.
func (c *Calendar) walkBusiness(ts types.Timestamp, t time.Time, dir int, remaining int64) (types.Timestamp, error) {
	skipped := 0
	for {
		if err := types.CheckYear(t.Year()); err != nil {
			return types.Timestamp{}, err
		}
		if c.isBusinessDay(t) {
			if remaining == 0 {
				return ts.WithTime(t)
			}
			remaining--
			skipped = 0
		} else {
			skipped++
			if skipped > c.window {
				return types.Timestamp{}, fmt.Errorf(
					"%w: no business day within %d days walking from %v",
					types.ErrFormat, c.window, ts,
				)
			}
		}
		t = t.AddDate(0, 0, dir)
	}
}

// addMonths jumps amount months from ts, clamping the day to the length of
// the target month. When holidays are configured and the landing day must
// be avoided, it walks within the target month: first in the direction of
// amount, then the other way from the landing day.
func (c *Calendar) addMonths(ts types.Timestamp, amount int64) (types.Timestamp, error) {
	if amount > maxMonths || amount < -maxMonths {
		return types.Timestamp{}, outOfRange(ts, Month, amount)
	}

	src := ts.GoTime()
	total := int64(src.Year())*monthsPerYear + int64(src.Month()-1) + amount
	year := int(total / monthsPerYear)
	month := time.Month(total%monthsPerYear + 1)
	if total < 0 {
		year, month = -1, 1
	}
	if err := types.CheckYear(year); err != nil {
		return types.Timestamp{}, err
	}

	day := min(src.Day(), types.DaysIn(year, month))
	t := time.Date(
		year, month, day,
		src.Hour(), src.Minute(), src.Second(), src.Nanosecond(),
		src.Location(),
	)

	if c.holidays != nil && c.avoid(t) {
		dir := 1
		if amount < 0 {
			dir = -1
		}
		var ok bool
		if t, ok = c.snapInMonth(t, dir); !ok {
			return types.Timestamp{}, fmt.Errorf(
				"%w: no valid day in %04d-%02d",
				types.ErrFormat, year, month,
			)
		}
	}

	return ts.WithTime(t)
}

// snapInMonth finds a valid day in t's month, walking first in dir and
// then in the opposite direction from t.
func (c *Calendar) snapInMonth(t time.Time, dir int) (time.Time, bool) {
	for _, d := range []int{dir, -dir} {
		for cur := t.AddDate(0, 0, d); cur.Month() == t.Month(); cur = cur.AddDate(0, 0, d) {
			if !c.avoid(cur) {
				return cur, true
			}
		}
	}
	return time.Time{}, false
}

// avoid reports whether a translation must not land on t: t is a holiday,
// or a weekend when weekend snapping is enabled.
func (c *Calendar) avoid(t time.Time) bool {
	if c.weekendSnap && isWeekend(t) {
		return true
	}
	return c.holidays != nil && c.holidays.IsHoliday(t)
}

// isBusinessDay reports whether t is a weekday that is not a holiday.
func (c *Calendar) isBusinessDay(t time.Time) bool {
	if isWeekend(t) {
		return false
	}
	return c.holidays == nil || !c.holidays.IsHoliday(t)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func outOfRange(ts types.Timestamp, unit Unit, amount int64) error {
	return fmt.Errorf(
		"%w: cannot translate %v by %d %v: out of range",
		types.ErrFormat, ts, amount, unit,
	)
}
