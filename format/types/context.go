package types

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// key is an unexported type for keys defined in this package. This prevents
// collisions with keys defined in other packages.
type key int

//nolint:gochecknoglobals
var (
	// clockKey is the key for Clock values in Contexts. It is unexported;
	// clients use ContextWithClock and ClockFromContext instead of using
	// this key directly.
	clockKey key
)

// ContextWithClock returns a new Context that carries clock. Parsers use it
// to resolve "now" and "today".
func ContextWithClock(ctx context.Context, clock Clock) context.Context {
	if clock == nil {
		return ctx
	}
	return context.WithValue(ctx, clockKey, clock)
}

// ClockFromContext returns the Clock stored in ctx or [time.Now].
func ClockFromContext(ctx context.Context) Clock {
	clock, ok := ctx.Value(clockKey).(Clock)
	if ok {
		return clock
	}
	return time.Now
}

// today returns a naive Timestamp at midnight of the current date of the
// clock in ctx.
func today(ctx context.Context) Timestamp {
	now := ClockFromContext(ctx)()
	return Timestamp{t: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
}

// LoadZone returns the time.Location for name. It accepts "UTC" and "Local"
// in any case, numeric offsets such as "+05:30", "-0800", and "+01", and
// IANA zone names such as "America/New_York".
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: empty time zone name", ErrTimeZone)
	case strings.EqualFold(name, "utc"), name == "Z", name == "z":
		return time.UTC, nil
	case strings.EqualFold(name, "local"):
		//nolint:gosmopolitan // Explicitly requested.
		return time.Local, nil
	case name[0] == '+' || name[0] == '-':
		off, err := parseOffset(name)
		if err != nil {
			return nil, err
		}
		return time.FixedZone("", off), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown time zone %q", ErrTimeZone, name)
	}
	return loc, nil
}

// parseOffset parses a numeric UTC offset of the form ±HH, ±HHMM, or
// ±HH:MM and returns it in seconds.
func parseOffset(src string) (int, error) {
	bad := func() (int, error) {
		return 0, fmt.Errorf("%w: invalid UTC offset %q", ErrTimeZone, src)
	}

	sign := 1
	switch src[0] {
	case '-':
		sign = -1
	case '+':
	default:
		return bad()
	}

	digits := strings.Replace(src[1:], ":", "", 1)
	if !isDigits(digits) || (len(digits) != 2 && len(digits) != 4) {
		return bad()
	}

	hours, _ := strconv.Atoi(digits[:2])
	minutes := 0
	if len(digits) == 4 {
		minutes, _ = strconv.Atoi(digits[2:])
	}
	if hours > 23 || minutes > 59 {
		return bad()
	}

	return sign * (hours*secondsPerHour + minutes*secondsPerMinute), nil
}

const (
	// secondsPerMinute contains the number of seconds in a minute.
	secondsPerMinute = 60

	// secondsPerHour contains the number of seconds in an hour (excluding
	// leap seconds).
	secondsPerHour = 60 * secondsPerMinute
)
