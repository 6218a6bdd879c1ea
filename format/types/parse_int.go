package types

import (
	"context"
	"fmt"
	"time"
)

const (
	// dateDigits is the number of digits in a YYYYMMDD integer.
	dateDigits = 8

	// yearMonthDigits is the number of digits in a YYYYMM integer.
	yearMonthDigits = 6

	// maxCompactTimeDigits is the number of digits in an HHMMSS integer.
	maxCompactTimeDigits = 6

	// minIntDate and maxIntDate bound YYYYMMDD integers.
	minIntDate = 10000000
	maxIntDate = 99991231
)

// ParseInt parses src into a Timestamp. It recognizes:
//
//   - YYYYMMDD: eight-digit dates
//   - YYYYMM: six-digit dates on the first of the month in years 1000-3000,
//     unless disabled by [WithYearMonth]
//   - HHMMSS, HMMSS: times of day on the current date
//   - HHMM, HMM: times of day on the current date
//   - HH, H: hours on the current date
//
// Seven-digit and negative integers are always invalid.
func (p *Parser) ParseInt(ctx context.Context, src int64) (Timestamp, error) {
	if src < 0 {
		return Timestamp{}, fmt.Errorf("%w: negative datetime integer %d", ErrFormat, src)
	}

	switch n := digitCount(src); {
	case n >= dateDigits:
		return intDate(src)
	case n == dateDigits-1:
		return Timestamp{}, fmt.Errorf(
			"%w: invalid datetime integer %d, must be one of: %v",
			ErrFormat, src, "YYYYMMDD, YYYYMM, HHMMSS, HMMSS, HHMM, HMM, HH, H",
		)
	case n == yearMonthDigits && p.yearMonth:
		if ts, ok := yearMonth(src); ok {
			return ts, nil
		}
	}

	return compactTime(ctx, src)
}

// intDate parses a YYYYMMDD integer.
func intDate(src int64) (Timestamp, error) {
	if src < minIntDate || src > maxIntDate {
		return Timestamp{}, fmt.Errorf(
			"%w: date integer %d out of range [%d, %d]",
			ErrFormat, src, minIntDate, maxIntDate,
		)
	}

	year, month, day := int(src/10000), time.Month(src/100%100), int(src%100)
	ts, err := NewDate(year, month, day)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w (parsing %d)", err, src)
	}
	return ts, nil
}

// yearMonth parses a YYYYMM integer, returning false if it does not form a
// valid year and month.
func yearMonth(src int64) (Timestamp, bool) {
	year, month := int(src/100), time.Month(src%100)
	if year < minIntYear || year > maxYearMonthYear {
		return Timestamp{}, false
	}
	ts, err := NewDate(year, month, 1)
	return ts, err == nil
}

// compactTime parses an integer of up to six digits as a time of day on the
// current date.
func compactTime(ctx context.Context, src int64) (Timestamp, error) {
	var hour, minute, second int64
	switch digitCount(src) {
	case 1, 2:
		hour = src
	case 3, 4:
		hour, minute = src/100, src%100
	case 5, 6:
		hour, minute, second = src/10000, src/100%100, src%100
	default:
		return Timestamp{}, fmt.Errorf(
			"%w: time integer %d exceeds %d digits",
			ErrFormat, src, maxCompactTimeDigits,
		)
	}

	if err := CheckTime(int(hour), int(minute), int(second), 0); err != nil {
		return Timestamp{}, fmt.Errorf("%w (parsing %d)", err, src)
	}

	return atTime(today(ctx), int(hour), int(minute), int(second), 0), nil
}

// digitCount returns the number of decimal digits in src, which must not
// be negative. Zero has one digit.
func digitCount(src int64) int {
	n := 1
	for src >= 10 {
		src /= 10
		n++
	}
	return n
}
