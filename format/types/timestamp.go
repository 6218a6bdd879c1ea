package types

import (
	"context"
	"fmt"
	"time"
)

// Timestamp is an immutable calendar date and time of day with microsecond
// precision and an optional time zone. A Timestamp without a zone is
// "naive": it carries wall clock fields only, and cannot be converted to
// another zone.
type Timestamp struct {
	t     time.Time
	zoned bool
}

// NewTimestamp returns a naive Timestamp for the specified components, or
// an error if they do not form a valid date and time.
func NewTimestamp(year int, month time.Month, day, hour, minute, second, micro int) (Timestamp, error) {
	if err := CheckDate(year, month, day); err != nil {
		return Timestamp{}, err
	}
	if err := CheckTime(hour, minute, second, micro); err != nil {
		return Timestamp{}, err
	}
	return Timestamp{
		t: time.Date(
			year, month, day, hour, minute, second,
			micro*int(time.Microsecond), time.UTC,
		),
	}, nil
}

// MustTimestamp is like NewTimestamp but panics on invalid components.
func MustTimestamp(year int, month time.Month, day, hour, minute, second, micro int) Timestamp {
	ts, err := NewTimestamp(year, month, day, hour, minute, second, micro)
	if err != nil {
		panic(err)
	}
	return ts
}

// NewDate returns a naive Timestamp at midnight on the specified date.
func NewDate(year int, month time.Month, day int) (Timestamp, error) {
	return NewTimestamp(year, month, day, 0, 0, 0, 0)
}

// FromTime returns a Timestamp in the location of src, truncated to
// microseconds.
func FromTime(src time.Time) Timestamp {
	return Timestamp{t: src.Truncate(time.Microsecond), zoned: true}
}

// Naive returns a naive Timestamp with the wall clock fields of src,
// truncated to microseconds. The location of src is discarded.
func Naive(src time.Time) Timestamp {
	return Timestamp{t: wall(src).Truncate(time.Microsecond)}
}

// wall returns src's wall clock fields in UTC.
func wall(src time.Time) time.Time {
	if src.Location() == time.UTC {
		return src
	}
	return time.Date(
		src.Year(), src.Month(), src.Day(),
		src.Hour(), src.Minute(), src.Second(), src.Nanosecond(),
		time.UTC,
	)
}

// WithTime returns a Timestamp for src that keeps the zone treatment of ts:
// a naive ts produces a naive result from the wall clock fields of src,
// otherwise src is converted to ts's location. Returns an error if the year
// of the result is out of range.
func (ts Timestamp) WithTime(src time.Time) (Timestamp, error) {
	var res Timestamp
	if ts.zoned {
		res = Timestamp{t: src.In(ts.t.Location()).Truncate(time.Microsecond), zoned: true}
	} else {
		res = Naive(src)
	}
	if err := CheckYear(res.t.Year()); err != nil {
		return Timestamp{}, err
	}
	return res, nil
}

// GoTime returns the underlying time.Time. Naive Timestamps return a UTC
// time.Time with the wall clock fields.
func (ts Timestamp) GoTime() time.Time { return ts.t }

// IsZero reports whether ts is the zero value.
func (ts Timestamp) IsZero() bool { return ts.t.IsZero() }

// Zoned returns true if ts carries a time zone.
func (ts Timestamp) Zoned() bool { return ts.zoned }

// Location returns the time zone of ts, or nil if ts is naive.
func (ts Timestamp) Location() *time.Location {
	if !ts.zoned {
		return nil
	}
	return ts.t.Location()
}

// In converts ts to loc. Returns an error if ts is naive or loc is nil.
func (ts Timestamp) In(loc *time.Location) (Timestamp, error) {
	if loc == nil {
		return Timestamp{}, fmt.Errorf("%w: nil location", ErrTimeZone)
	}
	if !ts.zoned {
		return Timestamp{}, fmt.Errorf(
			"%w: cannot convert %v without time zone to %v",
			ErrTimeZone, ts, loc,
		)
	}
	return Timestamp{t: ts.t.In(loc), zoned: true}, nil
}

// Year returns the year of ts.
func (ts Timestamp) Year() int { return ts.t.Year() }

// Month returns the month of ts.
func (ts Timestamp) Month() time.Month { return ts.t.Month() }

// Day returns the day of the month of ts.
func (ts Timestamp) Day() int { return ts.t.Day() }

// Hour returns the hour of ts.
func (ts Timestamp) Hour() int { return ts.t.Hour() }

// Minute returns the minute of ts.
func (ts Timestamp) Minute() int { return ts.t.Minute() }

// Second returns the second of ts.
func (ts Timestamp) Second() int { return ts.t.Second() }

// Microsecond returns the microsecond of ts.
func (ts Timestamp) Microsecond() int { return ts.t.Nanosecond() / int(time.Microsecond) }

// Weekday returns the day of the week of ts.
func (ts Timestamp) Weekday() time.Weekday { return ts.t.Weekday() }

// YearDay returns the day of the year of ts, in the range [1, 366].
func (ts Timestamp) YearDay() int { return ts.t.YearDay() }

// Date returns the date portion of ts as a naive Timestamp at midnight.
func (ts Timestamp) Date() Timestamp {
	return Timestamp{t: time.Date(ts.t.Year(), ts.t.Month(), ts.t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Format returns ts formatted with the Go reference layout.
func (ts Timestamp) Format(layout string) string { return ts.t.Format(layout) }

const (
	// naiveFormat is the canonical string format for naive Timestamps.
	naiveFormat = "2006-01-02T15:04:05.999999"

	// zonedFormat is the canonical string format for zoned Timestamps.
	zonedFormat = "2006-01-02T15:04:05.999999Z07:00"
)

// String returns the ISO 8601 representation of ts. Zoned Timestamps
// include the UTC offset.
func (ts Timestamp) String() string {
	if ts.zoned {
		return ts.t.Format(zonedFormat)
	}
	return ts.t.Format(naiveFormat)
}

// Compare compares the wall clock of ts with u. If ts is before u, it
// returns -1; if ts is after u, it returns +1; if they're the same, it
// returns 0. Two zoned Timestamps compare as instants.
func (ts Timestamp) Compare(u Timestamp) int {
	if ts.zoned && u.zoned {
		return ts.t.Compare(u.t)
	}
	return wall(ts.t).Compare(wall(u.t))
}

// Equal returns true if ts and u represent the same wall clock value and
// zone treatment.
func (ts Timestamp) Equal(u Timestamp) bool {
	return ts.zoned == u.zoned && ts.Compare(u) == 0
}

// MarshalText implements encoding.TextMarshaler.
func (ts Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts any input
// supported by [ParseString].
func (ts *Timestamp) UnmarshalText(data []byte) error {
	res, err := ParseString(context.Background(), string(data))
	if err != nil {
		return err
	}
	*ts = res
	return nil
}

// MarshalJSON implements the json.Marshaler interface. The Timestamp is a
// quoted ISO 8601 string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	const timestampJSONSize = len(zonedFormat) + len(`""`)
	b := make([]byte, 0, timestampJSONSize)
	b = append(b, '"')
	b = append(b, ts.String()...)
	b = append(b, '"')
	return b, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. The value must
// be a quoted string accepted by [ParseString].
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: cannot unmarshal %s into Timestamp", ErrFormat, data)
	}
	return ts.UnmarshalText(data[1 : len(data)-1])
}
