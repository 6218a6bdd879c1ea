package types

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultPivot is the default two-digit year pivot: two-digit years greater
// than the pivot map to the 1900s, the rest to the 2000s.
const DefaultPivot = 65

// Parser resolves [Value]s into [Timestamp]s.
type Parser struct {
	pivot     int
	yearMonth bool
}

// Option specifies a Parser option.
type Option func(*Parser)

// WithPivot sets the two-digit year pivot. Two-digit years greater than yy
// map to 19yy, the rest to 20yy.
func WithPivot(yy int) Option { return func(p *Parser) { p.pivot = yy } }

// WithYearMonth controls whether six-digit integers are first tried as
// YYYYMM dates before falling back to HHMMSS times. Enabled by default.
func WithYearMonth(ok bool) Option { return func(p *Parser) { p.yearMonth = ok } }

// NewParser creates a new Parser configured by opt.
func NewParser(opt ...Option) *Parser {
	p := &Parser{pivot: DefaultPivot, yearMonth: true}
	for _, o := range opt {
		o(p)
	}
	return p
}

//nolint:gochecknoglobals
var defaultParser = NewParser()

// Parse resolves v into a Timestamp using the default Parser.
func Parse(ctx context.Context, v Value) (Timestamp, error) {
	return defaultParser.Parse(ctx, v)
}

// ParseString parses src into a Timestamp using the default Parser.
func ParseString(ctx context.Context, src string) (Timestamp, error) {
	return defaultParser.ParseString(ctx, src)
}

// ParseInt parses src into a Timestamp using the default Parser.
func ParseInt(ctx context.Context, src int64) (Timestamp, error) {
	return defaultParser.ParseInt(ctx, src)
}

// Parse resolves v into a Timestamp. Values that need the current date or
// time get it from the clock in ctx; see [ContextWithClock].
func (p *Parser) Parse(ctx context.Context, v Value) (Timestamp, error) {
	switch v := v.(type) {
	case Int:
		return p.ParseInt(ctx, int64(v))
	case Text:
		return p.ParseString(ctx, string(v))
	case Date:
		return Naive(v.Time).Date(), nil
	case DateTime:
		return FromTime(v.Time), nil
	case TimeOfDay:
		return atTime(today(ctx), v.Hour(), v.Minute(), v.Second(), v.Nanosecond()/int(time.Microsecond)), nil
	case Convert:
		if v.Converter == nil {
			return Timestamp{}, fmt.Errorf("%w: nil converter", ErrFormat)
		}
		ts, err := v.ToTimestamp()
		if err != nil && !errors.Is(err, ErrFormat) {
			err = fmt.Errorf("%w: %w", ErrFormat, err)
		}
		return ts, err
	case Now:
		return Naive(ClockFromContext(ctx)()), nil
	case Timestamp:
		return v, nil
	default:
		return Timestamp{}, fmt.Errorf("%w: unsupported value %T", ErrFormat, v)
	}
}

// atTime returns a naive Timestamp on the date of day at the specified
// clock time. The components must already be validated.
func atTime(day Timestamp, hour, minute, second, micro int) Timestamp {
	return Timestamp{t: time.Date(
		day.Year(), day.Month(), day.Day(),
		hour, minute, second, micro*int(time.Microsecond),
		time.UTC,
	)}
}

//nolint:gochecknoglobals
var (
	// isoRegex matches ISO 8601 dates with optional time and zone.
	isoRegex = regexp.MustCompile(
		`^(\d{4})-(\d{2})-(\d{2})` +
			`(?:[Tt ](\d{2}):(\d{2})(?::(\d{2})(?:[.,](\d+))?)?` +
			`([Zz]|[+-]\d{2}(?::?\d{2})?)?)?$`,
	)

	// clockRegex matches a time of day.
	clockRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2})(?:[.,](\d+))?)?$`)
)

// ParseString parses src into a Timestamp. It tries, in order:
//
//  1. Eight- and six-digit strings as integers (see [Parser.ParseInt])
//  2. ISO 8601 dates and date-times, with optional fractional seconds and
//     UTC offset
//  3. Times of day, combined with the current date
//  4. A date followed by whitespace and a compact or colon-separated time
//  5. Dates split on "-" or "/" into exactly three fields: YYYY-MM-DD,
//     MM-DD-YYYY (or DD-MM-YYYY when the first field exceeds 12), and the
//     same with two-digit years resolved by the pivot
func (p *Parser) ParseString(ctx context.Context, src string) (Timestamp, error) {
	str := strings.TrimSpace(src)
	if str == "" {
		return Timestamp{}, fmt.Errorf("%w: empty datetime string", ErrFormat)
	}

	if isDigits(str) && (len(str) == 8 || len(str) == 6) {
		if i, err := strconv.ParseInt(str, 10, 64); err == nil {
			if ts, err := p.ParseInt(ctx, i); err == nil {
				return ts, nil
			}
		}
	}

	if match := isoRegex.FindStringSubmatch(str); match != nil {
		return parseISO(str, match)
	}

	if strings.ContainsRune(str, ':') && !strings.ContainsAny(str, "-/") {
		return parseClock(ctx, str)
	}

	if fields := strings.Fields(str); len(fields) == 2 {
		return p.parseCombined(ctx, fields[0], fields[1])
	}

	return p.parseDate(str)
}

// parseISO converts the submatches of isoRegex into a Timestamp.
func parseISO(src string, match []string) (Timestamp, error) {
	year, month, day := atoi(match[1]), atoi(match[2]), atoi(match[3])
	hour, minute, second := atoi(match[4]), atoi(match[5]), atoi(match[6])
	micro, err := parseFraction(src, match[7])
	if err != nil {
		return Timestamp{}, err
	}

	ts, err := NewTimestamp(year, time.Month(month), day, hour, minute, second, micro)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w (parsing %q)", err, src)
	}

	if zone := match[8]; zone != "" {
		loc := time.UTC
		if zone != "Z" && zone != "z" {
			off, err := parseOffset(zone)
			if err != nil {
				return Timestamp{}, fmt.Errorf("%w: invalid UTC offset in %q", ErrFormat, src)
			}
			loc = time.FixedZone("", off)
		}
		t := ts.t
		ts = Timestamp{
			t: time.Date(
				t.Year(), t.Month(), t.Day(),
				t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
				loc,
			),
			zoned: true,
		}
	}

	return ts, nil
}

// parseClock parses src as a time of day on the current date.
func parseClock(ctx context.Context, src string) (Timestamp, error) {
	match := clockRegex.FindStringSubmatch(src)
	if match == nil {
		return Timestamp{}, fmt.Errorf(
			"%w: invalid time format used (%v), must be HH:MM[:SS[.ffffff]]",
			ErrFormat, src,
		)
	}

	hour, minute, second := atoi(match[1]), atoi(match[2]), atoi(match[3])
	micro, err := parseFraction(src, match[4])
	if err != nil {
		return Timestamp{}, err
	}

	if err := CheckTime(hour, minute, second, micro); err != nil {
		return Timestamp{}, fmt.Errorf("%w (parsing %q)", err, src)
	}

	return atTime(today(ctx), hour, minute, second, micro), nil
}

// parseCombined parses date and clock as the date and time portions of a
// single Timestamp. clock may be a compact integer time or a
// colon-separated time.
func (p *Parser) parseCombined(ctx context.Context, date, clock string) (Timestamp, error) {
	day, err := p.parseDatePart(date)
	if err != nil {
		return Timestamp{}, err
	}

	var tod Timestamp
	switch {
	case isDigits(clock) && len(clock) <= maxCompactTimeDigits:
		i, _ := strconv.ParseInt(clock, 10, 64)
		tod, err = compactTime(ctx, i)
	case strings.ContainsRune(clock, ':'):
		tod, err = parseClock(ctx, clock)
	default:
		err = fmt.Errorf("%w: invalid time %q in %q", ErrFormat, clock, date+" "+clock)
	}
	if err != nil {
		return Timestamp{}, err
	}

	return atTime(day, tod.Hour(), tod.Minute(), tod.Second(), tod.Microsecond()), nil
}

// parseDatePart parses src as a date with no time component.
func (p *Parser) parseDatePart(src string) (Timestamp, error) {
	if isDigits(src) && len(src) == 8 {
		i, _ := strconv.ParseInt(src, 10, 64)
		return intDate(i)
	}
	return p.parseDate(src)
}

// dateSeparators are the field separators for non-ISO dates, in the order
// tried.
const dateSeparators = "-/"

// parseDate parses a three-field date separated by one of the
// dateSeparators.
func (p *Parser) parseDate(src string) (Timestamp, error) {
	var fields []string
	for _, sep := range dateSeparators {
		fields = strings.Split(src, string(sep))
		if len(fields) == 3 {
			break
		}
		if len(fields) > 1 {
			return Timestamp{}, fmt.Errorf(
				"%w: invalid date format used (%v), must be one of: %v",
				ErrFormat, src, strings.Join(SupportedFormats, ", "),
			)
		}
	}

	if len(fields) != 3 {
		return Timestamp{}, fmt.Errorf(
			"%w: invalid date format used, could not find split char in (%v), format must be one of: %v",
			ErrFormat, src, strings.Join(SupportedFormats, ", "),
		)
	}

	for _, f := range fields {
		if !isDigits(f) {
			return Timestamp{}, fmt.Errorf(
				"%w: invalid date format used (%v), fields must be numeric",
				ErrFormat, src,
			)
		}
	}

	var year, month, day int
	switch {
	case len(fields[0]) == 4:
		year, month, day = atoi(fields[0]), atoi(fields[1]), atoi(fields[2])
	case len(fields[2]) == 4:
		year = atoi(fields[2])
		month, day = monthDay(atoi(fields[0]), atoi(fields[1]))
	case len(fields[2]) == 2:
		year = p.expandYear(atoi(fields[2]))
		month, day = monthDay(atoi(fields[0]), atoi(fields[1]))
	default:
		return Timestamp{}, fmt.Errorf(
			"%w: invalid date format used (%v), must be one of: %v",
			ErrFormat, src, strings.Join(SupportedFormats, ", "),
		)
	}

	ts, err := NewDate(year, time.Month(month), day)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w (parsing %q)", err, src)
	}
	return ts, nil
}

// monthDay returns first and second as month and day, swapping them when
// first cannot be a month. Fields that could both be months resolve as
// month first.
func monthDay(first, second int) (int, int) {
	if first > 12 {
		return second, first
	}
	return first, second
}

// expandYear maps a two-digit year onto the 1900s or 2000s according to the
// pivot.
func (p *Parser) expandYear(yy int) int {
	if yy > p.pivot {
		return 1900 + yy
	}
	return 2000 + yy
}

// maxFractionDigits is the maximum number of fractional second digits.
const maxFractionDigits = 6

// parseFraction converts up to six fractional-second digits into
// microseconds.
func parseFraction(src, frac string) (int, error) {
	if frac == "" {
		return 0, nil
	}
	if len(frac) > maxFractionDigits {
		return 0, fmt.Errorf(
			"%w: fractional seconds in %q exceed %d digits",
			ErrFormat, src, maxFractionDigits,
		)
	}
	return atoi(frac + strings.Repeat("0", maxFractionDigits-len(frac))), nil
}

// isDigits returns true if str is non-empty and consists only of ASCII
// digits.
func isDigits(str string) bool {
	if str == "" {
		return false
	}
	for i := range len(str) {
		if str[i] < '0' || str[i] > '9' {
			return false
		}
	}
	return true
}

// atoi converts a string of digits to an int, returning 0 for the empty
// string. Callers must validate the string first.
func atoi(str string) int {
	i, _ := strconv.Atoi(str)
	return i
}
