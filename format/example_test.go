//nolint:godot
package format_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/theory/dtformat/format"
	"github.com/theory/dtformat/format/holiday"
	"github.com/theory/dtformat/format/types"
)

// Format renders a single field when the spec contains no "%", and a
// template when it does. Directives translate the value before rendering.
func ExampleFormat() {
	ctx := context.Background()
	for _, spec := range []string{
		"YYYYMMDD",
		"%YYYYMMDD-P1M%",
		"%HHMMSSZZ-P889000Z%",
		"%HHMMSS-M1H%",
		"Quarter %QUARTER% of %YYYY%",
	} {
		str, err := format.Format(ctx, "2005-03-01 23:59:59.111", spec)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(str)
	}
	// Output:
	// 20050301
	// 20050302
	// 00:00:00.000000
	// 22:59:59
	// Quarter 1 of 2005
}

// Business day translations skip weekends and holidays.
func ExampleFormat_businessDays() {
	ctx := context.Background()
	hols := format.WithHolidays(holiday.Federal{})

	fmt.Println(format.MustFormat(ctx, "2021-07-06", "DATE-M1B", hols))
	fmt.Println(format.MustFormat(ctx, "2021-07-06", "DATE-M1B"))
	fmt.Println(format.MustFormat(ctx, 20211231, "DATE-P1B", hols))
	// Output:
	// 2021-07-02
	// 2021-07-05
	// 2022-01-03
}

// Zoned values convert to another zone before rendering.
func ExampleWithTZ() {
	ctx := context.Background()
	str, err := format.Format(
		ctx, "2005-03-01T05:00:00-05:00", "%DATETIME% %TZ%",
		format.WithTZ("+09:00"),
	)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(str)

	// Values without a time zone cannot be converted.
	_, err = format.Format(ctx, "2005-03-01 05:00", "HHMM", format.WithTZ("UTC"))
	fmt.Println(err)
	// Output:
	// 2005-03-01 19:00:00 +09:00
	// format time zone: cannot convert 2005-03-01T05:00:00 without time zone to UTC
}

// A Formatter parses a value once and renders any number of templates,
// with positional arguments.
func ExampleFormatter() {
	ctx := types.ContextWithClock(context.Background(), func() time.Time {
		return time.Date(2005, 3, 1, 12, 0, 0, 0, time.UTC)
	})

	f, err := format.New(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	fn := f.Func(ctx)
	for _, tmpl := range []string{
		"{} report for %DATE-M1D%",
		"Run at %HH12%:%MI% %AMPM% on %DAY%",
		"{1}/{0}",
	} {
		str, err := fn(tmpl, "Daily", "ops")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(str)
	}
	// Output:
	// Daily report for 2005-02-28
	// Run at 12:00 PM on Tuesday
	// ops/Daily
}

// Compile parses a template once for rendering many values.
func ExampleCompile() {
	ctx := context.Background()
	tmpl := format.MustCompile("%mon% %dd%: %date-p1m%")
	fmt.Println(tmpl)

	for _, value := range []any{20050131, "2004-01-31", time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)} {
		str, err := tmpl.Render(ctx, value)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(str)
	}
	// Output:
	// %MON% %DD%: %DATE-P1m%
	// Jan 31: 2005-02-28
	// Jan 31: 2004-02-29
	// Dec 31: 2006-01-31
}
