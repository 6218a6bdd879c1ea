package holiday

import "time"

// US returns a Set of United States federal holidays for years. Holidays that
// fall on a Saturday are also observed on the preceding Friday, and those
// that fall on a Sunday on the following Monday. Both the actual and the
// observed dates are included.
func US(years ...int) *Set {
	set := NewSet()
	for _, year := range years {
		for _, e := range usHolidays(year) {
			set.Add(e.Date, e.Name)
		}
	}
	return set
}

// Federal reports United States federal holidays for any year, including
// observed dates, without building a Set.
type Federal struct{}

// IsHoliday returns true if date is a federal holiday or an observed federal
// holiday.
func (Federal) IsHoliday(date time.Time) bool {
	y, m, d := date.Date()
	// New Year's Day may be observed on December 31 of the previous year.
	for _, year := range []int{y, y + 1} {
		for _, e := range usHolidays(year) {
			if e.Date.Year() == y && e.Date.Month() == m && e.Date.Day() == d {
				return true
			}
		}
	}
	return false
}

// usHolidays returns the federal holidays for year, including observed
// dates.
func usHolidays(year int) []Entry {
	var entries []Entry
	fixed := func(month time.Month, day int, name string) {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		entries = append(entries, Entry{date, name})
		switch date.Weekday() {
		case time.Saturday:
			entries = append(entries, Entry{date.AddDate(0, 0, -1), name + " (Observed)"})
		case time.Sunday:
			entries = append(entries, Entry{date.AddDate(0, 0, 1), name + " (Observed)"})
		default:
		}
	}
	floating := func(month time.Month, wd time.Weekday, nth int, name string) {
		entries = append(entries, Entry{nthWeekday(year, month, wd, nth), name})
	}

	fixed(time.January, 1, "New Year's Day")
	if year >= 1986 {
		floating(time.January, time.Monday, 3, "Martin Luther King Jr. Day")
	}
	floating(time.February, time.Monday, 3, "Washington's Birthday")
	floating(time.May, time.Monday, -1, "Memorial Day")
	if year >= 2021 {
		fixed(time.June, 19, "Juneteenth National Independence Day")
	}
	fixed(time.July, 4, "Independence Day")
	floating(time.September, time.Monday, 1, "Labor Day")
	floating(time.October, time.Monday, 2, "Columbus Day")
	fixed(time.November, 11, "Veterans Day")
	floating(time.November, time.Thursday, 4, "Thanksgiving")
	fixed(time.December, 25, "Christmas Day")

	return entries
}

// nthWeekday returns the nth wd of month in year. A negative nth counts from
// the end of the month.
func nthWeekday(year int, month time.Month, wd time.Weekday, nth int) time.Time {
	if nth < 0 {
		last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
		back := (int(last.Weekday()) - int(wd) + 7) % 7
		return last.AddDate(0, 0, -back+(nth+1)*7)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	fwd := (int(wd) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, fwd+(nth-1)*7)
}
