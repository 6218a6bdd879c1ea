package holiday

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFor(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		path string
		exp  Format
		err  string
	}{
		{"holidays.yaml", YAML, ""},
		{"holidays.YML", YAML, ""},
		{"/etc/holidays.toml", TOML, ""},
		{"holidays.json", 0, `holiday: unsupported holiday file "holidays.json", must be .yaml, .yml, or .toml`},
		{"holidays", 0, `holiday: unsupported holiday file "holidays", must be .yaml, .yml, or .toml`},
	} {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)
			format, err := FormatFor(tc.path)
			if tc.err != "" {
				r.EqualError(err, tc.err)
				r.ErrorIs(err, ErrHoliday)
				return
			}
			r.NoError(err)
			r.Equal(tc.exp, format)
		})
	}

	assert.Equal(t, "yaml", YAML.String())
	assert.Equal(t, "toml", TOML.String())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		format Format
		doc    string
		exp    []Entry
		len    int
		err    string
	}{
		{
			name:   "yaml",
			format: YAML,
			doc:    "holidays:\n  2021-11-30: Company Day\n  \"2021-12-01\": Company Day 2\n",
			exp: []Entry{
				{day(2021, 11, 30), "Company Day"},
				{day(2021, 12, 1), "Company Day 2"},
			},
			len: 2,
		},
		{
			name:   "toml",
			format: TOML,
			doc:    "[holidays]\n2021-11-30 = \"Company Day\"\n\"2021-12-01\" = \"Company Day 2\"\n",
			exp: []Entry{
				{day(2021, 11, 30), "Company Day"},
				{day(2021, 12, 1), "Company Day 2"},
			},
			len: 2,
		},
		{
			name:   "yaml_us",
			format: YAML,
			doc:    "us: [2021]\nholidays:\n  2021-11-30: Company Day\n",
			len:    15,
		},
		{
			name:   "toml_us",
			format: TOML,
			doc:    "us = [2021]\n[holidays]\n2021-11-30 = \"Company Day\"\n",
			len:    15,
		},
		{
			name:   "empty_yaml",
			format: YAML,
			doc:    "",
			exp:    []Entry{},
		},
		{
			name:   "bad_yaml",
			format: YAML,
			doc:    "holidays: [",
			err:    "holiday: decode yaml: ",
		},
		{
			name:   "bad_toml",
			format: TOML,
			doc:    "holidays = [",
			err:    "holiday: decode toml: ",
		},
		{
			name:   "bad_date",
			format: TOML,
			doc:    "[holidays]\nnope = \"x\"\n",
			err:    `holiday: invalid date "nope": format: `,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			set, err := Load(strings.NewReader(tc.doc), tc.format)
			if tc.err != "" {
				r.ErrorIs(err, ErrHoliday)
				r.ErrorContains(err, tc.err)
				a.Nil(set)
				return
			}
			r.NoError(err)
			if tc.exp != nil {
				a.Equal(tc.exp, set.Entries(0))
			}
			if tc.len > 0 {
				a.Equal(tc.len, set.Len())
				a.True(set.IsHoliday(day(2021, 11, 30)))
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "company.yml")
	r.NoError(os.WriteFile(path, []byte("holidays:\n  2021-11-30: Company Day\n"), 0o600))
	set, err := LoadFile(path)
	r.NoError(err)
	a.True(set.IsHoliday(day(2021, 11, 30)))

	path = filepath.Join(dir, "company.toml")
	r.NoError(os.WriteFile(path, []byte("holidays = ["), 0o600))
	_, err = LoadFile(path)
	r.ErrorIs(err, ErrHoliday)
	r.ErrorContains(err, path)

	_, err = LoadFile(filepath.Join(dir, "nonesuch.yaml"))
	r.ErrorIs(err, ErrHoliday)
	r.ErrorIs(err, os.ErrNotExist)

	_, err = LoadFile(filepath.Join(dir, "nonesuch.ini"))
	r.ErrorIs(err, ErrHoliday)
}
