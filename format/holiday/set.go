// Package holiday provides holiday calendars for business day translation:
// an in-memory [Set], the [US] federal calendar, YAML and TOML file loaders,
// and a SQLite-backed [Store] of named calendars.
package holiday

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/theory/dtformat/format/types"
	"golang.org/x/exp/maps"
)

// ErrHoliday errors denote invalid holiday data or storage failures.
var ErrHoliday = errors.New("holiday")

// Entry is a single dated holiday.
type Entry struct {
	Date time.Time
	Name string
}

// Set is a set of dates, each with an optional name. It implements the
// calendar.Holidays interface. A Set is not safe for concurrent
// modification.
type Set struct {
	days map[string]string
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{days: map[string]string{}}
}

// FromMap creates a Set from a map of dates to names. Dates may use any
// layout accepted by [types.ParseString].
func FromMap(src map[string]string) (*Set, error) {
	set := NewSet()
	for date, name := range src {
		if err := set.AddString(date, name); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// dateKey returns the lookup key for the date portion of t.
func dateKey(t time.Time) string { return t.Format(time.DateOnly) }

// Add adds the date portion of date to the set with name, replacing any
// existing name.
func (s *Set) Add(date time.Time, name string) {
	s.days[dateKey(date)] = name
}

// AddString parses date and adds it to the set with name.
func (s *Set) AddString(date, name string) error {
	ts, err := types.ParseString(context.Background(), date)
	if err != nil {
		return fmt.Errorf("%w: invalid date %q: %w", ErrHoliday, date, err)
	}
	s.Add(ts.GoTime(), name)
	return nil
}

// Remove removes the date portion of date from the set.
func (s *Set) Remove(date time.Time) {
	delete(s.days, dateKey(date))
}

// IsHoliday returns true if the date portion of date is in the set.
func (s *Set) IsHoliday(date time.Time) bool {
	if s == nil {
		return false
	}
	_, ok := s.days[dateKey(date)]
	return ok
}

// Name returns the name of the holiday on date and true if it exists.
func (s *Set) Name(date time.Time) (string, bool) {
	name, ok := s.days[dateKey(date)]
	return name, ok
}

// Len returns the number of dates in the set.
func (s *Set) Len() int { return len(s.days) }

// Copy returns a copy of s that may be modified without affecting s.
func (s *Set) Copy() *Set {
	return &Set{days: maps.Clone(s.days)}
}

// Merge adds all of the dates in other to s. Names in other replace names
// for the same dates in s.
func (s *Set) Merge(other *Set) {
	maps.Copy(s.days, other.days)
}

// Entries returns the holidays in s sorted by date. If year is non-zero,
// only holidays in that year are returned.
func (s *Set) Entries(year int) []Entry {
	keys := maps.Keys(s.days)
	slices.Sort(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		date, _ := time.Parse(time.DateOnly, k)
		if year != 0 && date.Year() != year {
			continue
		}
		entries = append(entries, Entry{Date: date, Name: s.days[k]})
	}
	return entries
}
