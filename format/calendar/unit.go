package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/theory/dtformat/format/types"
)

// Unit identifies the unit of a translation.
type Unit int

//revive:disable:exported
const (
	Microsecond Unit = iota // microseconds
	Second                  // seconds
	Minute                  // minutes
	Hour                    // hours
	Day                     // days
	BusinessDay             // business_days
	Week                    // weeks
	Month                   // months
	Year                    // years
)

//nolint:gochecknoglobals
var unitNames = [...]string{
	Microsecond: "microseconds",
	Second:      "seconds",
	Minute:      "minutes",
	Hour:        "hours",
	Day:         "days",
	BusinessDay: "business_days",
	Week:        "weeks",
	Month:       "months",
	Year:        "years",
}

// String returns the plural name of the unit.
func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// duration returns the fixed duration of sub-day units, and false for all
// other units.
func (u Unit) duration() (time.Duration, bool) {
	switch u {
	case Microsecond:
		return time.Microsecond, true
	case Second:
		return time.Second, true
	case Minute:
		return time.Minute, true
	case Hour:
		return time.Hour, true
	default:
		return 0, false
	}
}

// ParseUnit parses the name of a unit, such as "days" or "business_day".
// Names are case-insensitive and may be singular or plural.
func ParseUnit(name string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for u, plural := range unitNames {
		if key == plural || key == strings.TrimSuffix(plural, "s") {
			return Unit(u), nil
		}
	}
	return 0, fmt.Errorf(
		"%w: unknown unit %q, must be one of: %v",
		types.ErrFormat, name, strings.Join(unitNames[:], ", "),
	)
}

// ZeroPolicy determines how a translation of zero business days behaves.
type ZeroPolicy int

//revive:disable:exported
const (
	// ZeroSnapForward moves to the first business day on or after the
	// Timestamp.
	ZeroSnapForward ZeroPolicy = iota // snap

	// ZeroNoop returns the Timestamp unchanged.
	ZeroNoop // noop
)

// String returns "snap" or "noop".
func (p ZeroPolicy) String() string {
	switch p {
	case ZeroSnapForward:
		return "snap"
	case ZeroNoop:
		return "noop"
	default:
		return fmt.Sprintf("ZeroPolicy(%d)", int(p))
	}
}

// ParseZeroPolicy parses "snap" or "noop" into a ZeroPolicy.
func ParseZeroPolicy(name string) (ZeroPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "snap", "":
		return ZeroSnapForward, nil
	case "noop":
		return ZeroNoop, nil
	default:
		return 0, fmt.Errorf(
			"%w: unknown zero business days policy %q, must be snap or noop",
			types.ErrFormat, name,
		)
	}
}
