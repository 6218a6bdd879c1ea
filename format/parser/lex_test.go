package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentRune(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	for _, tc := range []struct {
		name string
		val  rune
		char int
		exp  bool
	}{
		{"null_first", 0, 0, false},
		{"null_second", 0, 1, false},
		{"underscore_first", '_', 0, true},
		{"underscore_second", '_', 1, true},
		{"alpha_first", 'Y', 0, true},
		{"alpha_second", 'y', 1, true},
		{"letter_first", 'ઓ', 0, true},
		{"letter_second", 'ઓ', 1, true},
		{"digit_first", '1', 0, false},
		{"digit_second", '2', 1, true},
		{"emoji_first", '🎉', 0, false},
		{"emoji_second", '🎉', 1, false},
		{"dash_first", '-', 0, false},
		{"dash_second", '-', 1, false},
		{"percent_first", '%', 0, false},
		{"percent_second", '%', 1, false},
		{"space_first", ' ', 0, false},
		{"space_second", ' ', 1, false},
	} {
		a.Equal(tc.exp, isIdentRune(tc.val, tc.char), tc.name)
	}
}

func TestSplitToken(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		body string
		id   string
		segs []string
		ok   bool
	}{
		{"name", "YYYYMMDD", "YYYYMMDD", nil, true},
		{"lower", "date", "date", nil, true},
		{"underscore", "_x_1", "_x_1", nil, true},
		{"one_directive", "DATE-M1D", "DATE", []string{"M1D"}, true},
		{"two_directives", "HH12-P1H-m30M", "HH12", []string{"P1H", "m30M"}, true},
		{"empty_directive", "DATE-", "DATE", []string{""}, true},
		{"empty_between", "DATE--P1D", "DATE", []string{"", "P1D"}, true},
		{"unicode", "日付", "日付", nil, true},
		{"empty", "", "", nil, false},
		{"space", " ", "", nil, false},
		{"digits", "12", "", nil, false},
		{"leading_dash", "-M1D", "", nil, false},
		{"trailing_space", "DATE ", "", nil, false},
		{"other_char", "DATE+P1D", "", nil, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)

			id, segs, ok := splitToken(tc.body)
			a.Equal(tc.ok, ok)
			a.Equal(tc.id, id)
			a.Equal(tc.segs, segs)
		})
	}
}
