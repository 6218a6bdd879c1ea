// Package types provides the canonical Timestamp value, the closed set of
// input values accepted by the parsers, and the scalar parsers that resolve
// loosely-structured integers and strings into Timestamps.
//
// It also defines the errors returned throughout the format packages, so
// that callers can test any failure with [errors.Is] regardless of which
// stage detected it.
package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrFormat errors denote input that cannot be resolved into a valid
	// Timestamp: out of range components, unsupported layouts, or calendar
	// walks that cannot find a landing day.
	ErrFormat = errors.New("format")

	// ErrField errors denote a template token naming an unknown field.
	ErrField = errors.New("format field")

	// ErrTranslation errors denote a malformed translation directive in a
	// template token.
	ErrTranslation = errors.New("format translation")

	// ErrTimeZone errors denote an unknown time zone or a zone conversion
	// applied to a Timestamp without zone.
	ErrTimeZone = errors.New("format time zone")
)

const (
	// MinYear is the smallest year a Timestamp may carry.
	MinYear = 1

	// MaxYear is the largest year a Timestamp may carry.
	MaxYear = 9999

	// minIntYear is the smallest year accepted from integer input, which
	// must have four year digits.
	minIntYear = 1000

	// maxYearMonthYear is the largest year accepted from a YYYYMM integer.
	maxYearMonthYear = 3000

	// maxMicrosecond is the largest microsecond value.
	maxMicrosecond = 999_999
)

// SupportedFormats lists the input layouts recognized by [Parser]. It is
// included in error messages for input that cannot be parsed.
//
//nolint:gochecknoglobals
var SupportedFormats = []string{
	"YYYYMMDD",
	"YYYYMM",
	"YYYY-MM-DD",
	"YYYY/MM/DD",
	"MM-DD-YYYY",
	"MM/DD/YYYY",
	"DD-MM-YYYY",
	"DD/MM/YYYY",
	"MM-DD-YY",
	"MM/DD/YY",
	"YYYY-MM-DD[THH:MM[:SS[.ffffff]]][Z|+HH:MM]",
	"HH:MM[:SS[.ffffff]]",
	"H, HMM, HHMM, HMMSS, HHMMSS",
	"<date> HHMMSS",
	"<date> HH:MM[:SS[.ffffff]]",
}

// IsLeap reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// CheckYear returns an error if year falls outside [MinYear, MaxYear].
func CheckYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf(
			"%w: year %d out of range [%d, %d]",
			ErrFormat, year, MinYear, MaxYear,
		)
	}
	return nil
}

// CheckDate returns an error if year, month, and day do not form a valid
// calendar date.
func CheckDate(year int, month time.Month, day int) error {
	if err := CheckYear(year); err != nil {
		return err
	}
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month %d out of range [1, 12]", ErrFormat, month)
	}
	if last := DaysIn(year, month); day < 1 || day > last {
		return fmt.Errorf(
			"%w: day %d out of range [1, %d] for %04d-%02d",
			ErrFormat, day, last, year, month,
		)
	}
	return nil
}

// CheckTime returns an error if hour, minute, second, and microsecond do not
// form a valid time of day.
func CheckTime(hour, minute, second, micro int) error {
	switch {
	case hour < 0 || hour > 23:
		return fmt.Errorf("%w: hour %d out of range [0, 23]", ErrFormat, hour)
	case minute < 0 || minute > 59:
		return fmt.Errorf("%w: minute %d out of range [0, 59]", ErrFormat, minute)
	case second < 0 || second > 59:
		return fmt.Errorf("%w: second %d out of range [0, 59]", ErrFormat, second)
	case micro < 0 || micro > maxMicrosecond:
		return fmt.Errorf(
			"%w: microsecond %d out of range [0, %d]",
			ErrFormat, micro, maxMicrosecond,
		)
	}
	return nil
}
