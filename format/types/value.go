package types

import (
	"fmt"
	"math"
	"time"
)

// Value is the closed set of inputs accepted by [Parser.Parse]. Use
// [ValueOf] to resolve an arbitrary Go value into a Value.
type Value interface {
	isValue()
}

// Converter is implemented by values that can produce their own Timestamp.
type Converter interface {
	ToTimestamp() (Timestamp, error)
}

type (
	// Int is an integer input, either a YYYYMMDD or YYYYMM date or a compact
	// time of day.
	Int int64

	// Text is a string input in any of the [SupportedFormats].
	Text string

	// Date uses the calendar date of Time at midnight, ignoring its clock
	// and location.
	Date struct{ time.Time }

	// DateTime uses Time in its location, producing a zoned Timestamp.
	DateTime struct{ time.Time }

	// TimeOfDay uses the clock of Time on the current date.
	TimeOfDay struct{ time.Time }

	// Convert defers to the wrapped Converter.
	Convert struct{ Converter }

	// Now is the current date and time.
	Now struct{}
)

func (Int) isValue()       {}
func (Text) isValue()      {}
func (Date) isValue()      {}
func (DateTime) isValue()  {}
func (TimeOfDay) isValue() {}
func (Convert) isValue()   {}
func (Now) isValue()       {}
func (Timestamp) isValue() {}

// ValueOf resolves src into a Value:
//
//   - nil: [Now]
//   - Value (including [Timestamp]): itself
//   - signed and unsigned integers: [Int]
//   - string, []byte: [Text]
//   - time.Time: [DateTime]
//   - [Converter]: [Convert]
//
// Returns an error for any other type.
func ValueOf(src any) (Value, error) {
	switch src := src.(type) {
	case nil:
		return Now{}, nil
	case Value:
		return src, nil
	case int:
		return Int(src), nil
	case int8:
		return Int(src), nil
	case int16:
		return Int(src), nil
	case int32:
		return Int(src), nil
	case int64:
		return Int(src), nil
	case uint:
		return uintValue(uint64(src))
	case uint8:
		return Int(src), nil
	case uint16:
		return Int(src), nil
	case uint32:
		return Int(src), nil
	case uint64:
		return uintValue(src)
	case string:
		return Text(src), nil
	case []byte:
		return Text(src), nil
	case time.Time:
		return DateTime{src}, nil
	case *time.Time:
		if src == nil {
			return Now{}, nil
		}
		return DateTime{*src}, nil
	case Converter:
		return Convert{src}, nil
	default:
		return nil, fmt.Errorf(
			"%w: invalid datetime %v (%T) provided, could not process",
			ErrFormat, src, src,
		)
	}
}

func uintValue(src uint64) (Value, error) {
	if src > math.MaxInt64 {
		return nil, fmt.Errorf("%w: integer %d out of range", ErrFormat, src)
	}
	return Int(src), nil
}
