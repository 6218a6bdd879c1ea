// Package field provides the registry of template field names and the rules
// that render a Timestamp for each.
//
// The registry is populated at initialization and never modified. Field
// names are matched case-insensitively; the canonical form is upper case.
package field

import (
	"slices"
	"strconv"
	"strings"

	"github.com/theory/dtformat/format/types"
	"golang.org/x/exp/maps"
)

// Rule renders a Timestamp for a single field, either through a Go reference
// layout or a computed function.
type Rule struct {
	name   string
	layout string
	fn     func(types.Timestamp) string
	desc   string
}

// Name returns the canonical upper-case name of the field.
func (r Rule) Name() string { return r.name }

// Layout returns the Go reference layout for the field, or an empty string
// if the field is computed.
func (r Rule) Layout() string { return r.layout }

// Description returns a short description of the field's output.
func (r Rule) Description() string { return r.desc }

// Render renders ts according to the rule.
func (r Rule) Render(ts types.Timestamp) string {
	if r.fn != nil {
		return r.fn(ts)
	}
	return ts.Format(r.layout)
}

// String returns the field name.
func (r Rule) String() string { return r.name }

// registry maps upper-case field names to their rules.
//
//nolint:gochecknoglobals
var registry = map[string]Rule{}

func layout(name, layout, desc string) {
	registry[name] = Rule{name: name, layout: layout, desc: desc}
}

func computed(name string, fn func(types.Timestamp) string, desc string) {
	registry[name] = Rule{name: name, fn: fn, desc: desc}
}

//nolint:gochecknoinits
func init() {
	// Dates
	layout("YYYYMMDD", "20060102", "compact date, e.g. 20050301")
	layout("MMDDYYYY", "01022006", "compact US date, e.g. 03012005")
	layout("DDMMYYYY", "02012006", "compact European date, e.g. 01032005")
	layout("YYMMDD", "060102", "compact date with two-digit year, e.g. 050301")
	layout("MMDDYY", "010206", "compact US date with two-digit year, e.g. 030105")
	layout("YYYY", "2006", "four-digit year")
	layout("YY", "06", "two-digit year")
	layout("MM", "01", "two-digit month")
	layout("DD", "02", "two-digit day of the month")
	layout("DATE", "2006-01-02", "ISO 8601 date, e.g. 2005-03-01")
	layout("USDATE", "01/02/2006", "US date, e.g. 03/01/2005")
	layout("DOY", "002", "three-digit day of the year")

	// Dates and times
	layout("DATETIME", "2006-01-02 15:04:05", "date and time, e.g. 2005-03-01 23:59:59")
	layout("TIMESTAMP", "2006-01-02 15:04:05.000000", "date and time with microseconds")
	computed("ISO", iso, "ISO 8601 date and time, with offset when zoned")

	// Times
	layout("HHMMSS", "15:04:05", "time, e.g. 23:59:59")
	layout("HHMMSSZZ", "15:04:05.000000", "time with microseconds, e.g. 23:59:59.111000")
	layout("HHMM", "15:04", "hour and minute, e.g. 23:59")
	layout("HH", "15", "two-digit 24-hour hour")
	layout("HH12", "03", "two-digit 12-hour hour")
	layout("MI", "04", "two-digit minute")
	layout("SS", "05", "two-digit second")
	layout("AMPM", "PM", "AM or PM")
	computed("ZZ", micros, "six-digit microsecond")

	// Names
	layout("MONTH", "January", "full month name")
	layout("MON", "Jan", "abbreviated month name")
	layout("DAY", "Monday", "full weekday name")
	layout("DY", "Mon", "abbreviated weekday name")

	// Computed
	computed("WEEKDAY", weekday, "ISO weekday number, Monday=1 through Sunday=7")
	computed("QUARTER", quarter, "quarter of the year, 1-4")
	computed("EPOCH", epoch, "seconds since the Unix epoch, naive times as UTC")
	computed("TZ", zone, "UTC offset, e.g. -05:00, empty when naive")
}

// Lookup returns the Rule for name, matched case-insensitively, and true if
// it exists.
func Lookup(name string) (Rule, bool) {
	r, ok := registry[strings.ToUpper(name)]
	return r, ok
}

// Names returns the sorted list of registered field names.
func Names() []string {
	keys := maps.Keys(registry)
	slices.Sort(keys)
	return keys
}

// Rules returns all registered Rules sorted by name.
func Rules() []Rule {
	names := Names()
	rules := make([]Rule, len(names))
	for i, name := range names {
		rules[i] = registry[name]
	}
	return rules
}

func iso(ts types.Timestamp) string {
	if ts.Zoned() {
		return ts.Format("2006-01-02T15:04:05Z07:00")
	}
	return ts.Format("2006-01-02T15:04:05")
}

func micros(ts types.Timestamp) string {
	const width = 6
	s := strconv.Itoa(ts.Microsecond())
	return strings.Repeat("0", width-len(s)) + s
}

func weekday(ts types.Timestamp) string {
	wd := int(ts.Weekday())
	if wd == 0 {
		wd = 7
	}
	return strconv.Itoa(wd)
}

func quarter(ts types.Timestamp) string {
	return strconv.Itoa((int(ts.Month())-1)/3 + 1)
}

func epoch(ts types.Timestamp) string {
	return strconv.FormatInt(ts.GoTime().Unix(), 10)
}

func zone(ts types.Timestamp) string {
	if !ts.Zoned() {
		return ""
	}
	return ts.Format("-07:00")
}
