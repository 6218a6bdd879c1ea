package holiday

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a holiday file format.
type Format int

//revive:disable:exported
const (
	YAML Format = iota // yaml
	TOML               // toml
)

// String returns "yaml" or "toml".
func (f Format) String() string {
	if f == TOML {
		return "toml"
	}
	return "yaml"
}

// FormatFor returns the Format for path based on its extension: ".yaml" and
// ".yml" for YAML, ".toml" for TOML.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("%w: unsupported holiday file %q, must be .yaml, .yml, or .toml", ErrHoliday, path)
	}
}

// document is the structure of a holiday file. In YAML:
//
//	us: [2021, 2022]
//	holidays:
//	  2021-11-30: Company Day
//	  2021-12-01: Company Day 2
//
// And in TOML:
//
//	us = [2021, 2022]
//	[holidays]
//	2021-11-30 = "Company Day"
//	2021-12-01 = "Company Day 2"
type document struct {
	US       []int             `toml:"us"       yaml:"us"`
	Holidays map[string]string `toml:"holidays" yaml:"holidays"`
}

// Load reads a holiday document in format from r. The resulting Set
// contains the US federal holidays for the years listed under "us" merged
// with the dates listed under "holidays".
func Load(r io.Reader, format Format) (*Set, error) {
	var doc document
	switch format {
	case TOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode toml: %w", ErrHoliday, err)
		}
	default:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: decode yaml: %w", ErrHoliday, err)
		}
	}

	custom, err := FromMap(doc.Holidays)
	if err != nil {
		return nil, err
	}

	set := US(doc.US...)
	set.Merge(custom)
	return set, nil
}

// LoadFile loads the holiday file at path, choosing the format from the
// file extension.
func LoadFile(path string) (*Set, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHoliday, err)
	}

	set, err := Load(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", err, path)
	}
	return set, nil
}
