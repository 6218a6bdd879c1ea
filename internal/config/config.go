// Package config loads dtfmt configuration from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/theory/dtformat/format/calendar"
	"github.com/theory/dtformat/format/types"
)

// ErrConfig errors denote invalid configuration.
var ErrConfig = errors.New("config")

// EnvVar names the environment variable consulted for the configuration
// file path when none is passed to [Load].
const EnvVar = "DTFMT_CONFIG"

// DefaultCalendar is the name of the holiday calendar used in a holiday
// database when none is configured.
const DefaultCalendar = "default"

// maxPivot is the largest two-digit year pivot.
const maxPivot = 99

// Config represents dtfmt configuration.
type Config struct {
	// Pivot is the two-digit year pivot: years greater than Pivot are in
	// the 1900s, the rest in the 2000s.
	Pivot int `toml:"pivot"`

	// WeekendSnap determines whether translations snap away from weekends
	// as well as holidays.
	WeekendSnap bool `toml:"weekend_snap"`

	// ZeroBusinessDays is the policy for zero business day translations:
	// "snap" or "noop".
	ZeroBusinessDays string `toml:"zero_business_days"`

	// SearchWindow is the maximum number of consecutive non-business days a
	// translation may pass over.
	SearchWindow int `toml:"search_window"`

	// Timezone is the default output time zone. Empty for none.
	Timezone string `toml:"timezone"`

	// Holidays configures the holiday calendar.
	Holidays Holidays `toml:"holidays"`
}

// Holidays configures the sources merged into the holiday calendar.
type Holidays struct {
	// US includes the US federal holidays for every year.
	US bool `toml:"us"`

	// Files lists YAML and TOML holiday files. Relative paths resolve
	// against the configuration file's directory.
	Files []string `toml:"files"`

	// Database is the SQLite holiday database DSN. Relative paths resolve
	// against the configuration file's directory.
	Database string `toml:"database"`

	// Calendar names the calendar to load from Database.
	Calendar string `toml:"calendar"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Pivot:            types.DefaultPivot,
		WeekendSnap:      true,
		ZeroBusinessDays: calendar.ZeroSnapForward.String(),
		SearchWindow:     calendar.DefaultSearchWindow,
		Holidays:         Holidays{Calendar: DefaultCalendar},
	}
}

// Path returns path if it is not empty, and otherwise the value of
// [EnvVar].
func Path(path string) string {
	if path != "" {
		return path
	}
	return os.Getenv(EnvVar)
}

// Load loads the configuration file at path, or at the path named by
// [EnvVar] if path is empty. Values missing from the file keep their
// defaults. Returns [Default] if neither names a file.
func Load(path string) (*Config, error) {
	path = Path(path)
	if path == "" {
		return Default(), nil
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse %s: %w", ErrConfig, path, err)
	}

	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return nil, fmt.Errorf(
			"%w: unknown keys in %s: %s",
			ErrConfig, path, strings.Join(names, ", "),
		)
	}

	cfg.resolve(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}

	return cfg, nil
}

// resolve makes relative holiday paths relative to dir.
func (c *Config) resolve(dir string) {
	for i, file := range c.Holidays.Files {
		c.Holidays.Files[i] = relativeTo(dir, file)
	}
	if db := c.Holidays.Database; db != "" && db != ":memory:" && !strings.HasPrefix(db, "file:") {
		c.Holidays.Database = relativeTo(dir, db)
	}
}

func relativeTo(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Validate returns an error if any value is invalid.
func (c *Config) Validate() error {
	if c.Pivot < 0 || c.Pivot > maxPivot {
		return fmt.Errorf("%w: pivot %d out of range [0, %d]", ErrConfig, c.Pivot, maxPivot)
	}
	if c.SearchWindow < 1 {
		return fmt.Errorf("%w: search_window must be greater than zero", ErrConfig)
	}
	if _, err := c.ZeroPolicy(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if c.Timezone != "" {
		if _, err := types.LoadZone(c.Timezone); err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}
	if c.Holidays.Database != "" && c.Holidays.Calendar == "" {
		return fmt.Errorf("%w: holidays.calendar required with holidays.database", ErrConfig)
	}
	return nil
}

// ZeroPolicy returns the parsed zero business days policy.
func (c *Config) ZeroPolicy() (calendar.ZeroPolicy, error) {
	//nolint:wrapcheck // Okay to return unwrapped error
	return calendar.ParseZeroPolicy(c.ZeroBusinessDays)
}
