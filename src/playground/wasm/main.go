// Package main provides the Wasm playground app.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	_ "time/tzdata"

	//nolint
	"syscall/js"

	"github.com/theory/dtformat/format"
	"github.com/theory/dtformat/format/calendar"
	"github.com/theory/dtformat/format/holiday"
)

const (
	optUSHolidays int = 1 << iota
	optNoWeekendSnap
	optZeroNoop
	optIndent
)

// render is the JavaScript entry point: render(value, template, args, tz,
// holidays, opts).
func render(_ js.Value, args []js.Value) any {
	value := args[0].String()
	template := args[1].String()
	extra := args[2].String()
	tz := args[3].String()
	hols := args[4].String()
	opts := args[5].Int()

	return execute(value, template, extra, tz, hols, opts)
}

// parse is the JavaScript entry point: parse(value, opts).
func parse(_ js.Value, args []js.Value) any {
	ts, err := format.Parse(context.Background(), args[0].String())
	if err != nil {
		return fmt.Sprintf("Error %v", err)
	}

	var out []byte
	if args[1].Int()&optIndent == optIndent {
		out, err = json.MarshalIndent(ts, "", "  ")
	} else {
		out, err = json.Marshal(ts)
	}
	if err != nil {
		return fmt.Sprintf("Error serializing result: %v", err)
	}
	return string(out)
}

func main() {
	stream := make(chan struct{})

	js.Global().Set("render", js.FuncOf(render))
	js.Global().Set("parse", js.FuncOf(parse))
	js.Global().Set("optUSHolidays", js.ValueOf(optUSHolidays))
	js.Global().Set("optNoWeekendSnap", js.ValueOf(optNoWeekendSnap))
	js.Global().Set("optZeroNoop", js.ValueOf(optZeroNoop))
	js.Global().Set("optIndent", js.ValueOf(optIndent))

	<-stream
}

func execute(value, template, extra, tz, hols string, opts int) string {
	// Assemble the options.
	options, msg := assembleOptions(extra, tz, hols, opts)
	if msg != "" {
		return msg
	}

	// Render the template.
	res, err := format.Format(context.Background(), value, template, options...)
	if err != nil {
		return fmt.Sprintf("Error %v", err)
	}
	return res
}

func assembleOptions(extra, tz, hols string, opts int) ([]format.Option, string) {
	options := []format.Option{}

	if extra != "" {
		var args []any
		if err := json.Unmarshal([]byte(extra), &args); err != nil {
			return nil, fmt.Sprintf("Error parsing arguments: %v", err)
		}
		options = append(options, format.WithArgs(args...))
	}

	if tz != "" {
		options = append(options, format.WithTZ(tz))
	}

	set := holiday.NewSet()
	if hols != "" {
		var days map[string]string
		if err := json.Unmarshal([]byte(hols), &days); err != nil {
			return nil, fmt.Sprintf("Error parsing holidays: %v", err)
		}
		custom, err := holiday.FromMap(days)
		if err != nil {
			return nil, fmt.Sprintf("Error %v", err)
		}
		set.Merge(custom)
	}

	switch {
	case opts&optUSHolidays == optUSHolidays:
		options = append(options, format.WithHolidays(union{holiday.Federal{}, set}))
	case set.Len() > 0:
		options = append(options, format.WithHolidays(set))
	}

	if opts&optNoWeekendSnap == optNoWeekendSnap {
		options = append(options, format.WithWeekendSnap(false))
	}

	if opts&optZeroNoop == optZeroNoop {
		options = append(options, format.WithZeroBusinessDays(calendar.ZeroNoop))
	}

	return options, ""
}

// union combines the federal holidays with custom holidays.
type union struct {
	federal holiday.Federal
	custom  *holiday.Set
}

func (u union) IsHoliday(date time.Time) bool {
	return u.federal.IsHoliday(date) || u.custom.IsHoliday(date)
}
