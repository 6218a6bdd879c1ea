// Package format parses loosely structured date and time values into
// Timestamps and renders them through templates.
//
// A template contains literal text, field tokens such as "%YYYYMMDD%", and
// argument slots such as "{}" and "{1}". A field token may translate the
// Timestamp before rendering it: "%YYYYMMDD-M1B%" renders the previous
// business day, and "%HHMMSS-P1H-M30M%" renders the time half an hour
// later. See the [parser] package for the complete template syntax, the
// [field] package for the field names, and the [calendar] package for
// translation semantics.
//
// Values may be integers ("20050301", "200503", "1845"), strings in any of
// the [types.SupportedFormats], [time.Time] values, [types.Converter]
// implementations, [types.Timestamp] values, or nil for the current time.
//
// [parser]: https://pkg.go.dev/github.com/theory/dtformat/format/parser
// [field]: https://pkg.go.dev/github.com/theory/dtformat/format/field
// [calendar]: https://pkg.go.dev/github.com/theory/dtformat/format/calendar
package format

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/theory/dtformat/format/ast"
	"github.com/theory/dtformat/format/calendar"
	"github.com/theory/dtformat/format/exec"
	"github.com/theory/dtformat/format/parser"
	"github.com/theory/dtformat/format/types"
)

//nolint:gochecknoglobals
var (
	// ErrFormat errors denote values that cannot be parsed into a valid
	// Timestamp, translations that fail, and missing arguments.
	ErrFormat = types.ErrFormat

	// ErrField errors denote templates that reference unknown fields.
	ErrField = types.ErrField

	// ErrTranslation errors denote malformed translation directives.
	ErrTranslation = types.ErrTranslation

	// ErrTimeZone errors denote unknown time zones or Timestamps without a
	// time zone to convert from.
	ErrTimeZone = types.ErrTimeZone

	// ErrScan wraps scanning errors.
	ErrScan = errors.New("scan")
)

// cacheSize is the number of parsed templates retained by [Format] and
// [Formatter.Format].
const cacheSize = 256

//nolint:gochecknoglobals
var cache = mustCache(cacheSize)

func mustCache(size int) *lru.Cache[string, *ast.Template] {
	c, err := lru.New[string, *ast.Template](size)
	if err != nil {
		panic(err)
	}
	return c
}

// config collects the parsing and rendering options.
type config struct {
	parse  []types.Option
	render []exec.Option
}

// Option specifies a parsing or formatting option.
type Option func(*config)

func newConfig(opt ...Option) *config {
	c := &config{}
	for _, o := range opt {
		o(c)
	}
	return c
}

// WithPivot sets the pivot for two-digit years: years greater than yy are
// in the 1900s, the rest in the 2000s. Defaults to [types.DefaultPivot].
func WithPivot(yy int) Option {
	return func(c *config) { c.parse = append(c.parse, types.WithPivot(yy)) }
}

// WithYearMonth determines whether six-digit integers may be parsed as
// YYYYMM before HHMMSS. Defaults to true.
func WithYearMonth(ok bool) Option {
	return func(c *config) { c.parse = append(c.parse, types.WithYearMonth(ok)) }
}

// WithHolidays sets the holiday calendar for day, week, business day, month,
// and year translations.
func WithHolidays(h calendar.Holidays) Option {
	return func(c *config) { c.render = append(c.render, exec.WithHolidays(h)) }
}

// WithWeekendSnap determines whether translations snap away from weekends
// as well as holidays. Defaults to true.
func WithWeekendSnap(ok bool) Option {
	return func(c *config) { c.render = append(c.render, exec.WithWeekendSnap(ok)) }
}

// WithZeroBusinessDays sets the policy for zero business day translations.
func WithZeroBusinessDays(p calendar.ZeroPolicy) Option {
	return func(c *config) { c.render = append(c.render, exec.WithZeroBusinessDays(p)) }
}

// WithSearchWindow sets the maximum number of consecutive non-business days
// a translation may pass over.
func WithSearchWindow(days int) Option {
	return func(c *config) { c.render = append(c.render, exec.WithSearchWindow(days)) }
}

// WithArgs passes the extra arguments for "{}" and "{N}" slots.
func WithArgs(args ...any) Option {
	return func(c *config) { c.render = append(c.render, exec.WithArgs(args...)) }
}

// WithTZ converts Timestamps to the named zone before rendering fields.
func WithTZ(name string) Option {
	return func(c *config) { c.render = append(c.render, exec.WithTZ(name)) }
}

// WithLocation converts Timestamps to loc before rendering fields.
func WithLocation(loc *time.Location) Option {
	return func(c *config) { c.render = append(c.render, exec.WithLocation(loc)) }
}

// WithLogger sets the logger for translation debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.render = append(c.render, exec.WithLogger(logger)) }
}

// Parse parses value into a Timestamp. value may be any type supported by
// [types.ValueOf]. Only [WithPivot] and [WithYearMonth] apply.
func Parse(ctx context.Context, value any, opt ...Option) (types.Timestamp, error) {
	return newConfig(opt...).timestamp(ctx, value)
}

func (c *config) timestamp(ctx context.Context, value any) (types.Timestamp, error) {
	val, err := types.ValueOf(value)
	if err != nil {
		return types.Timestamp{}, err
	}
	//nolint:wrapcheck // Okay to return unwrapped error
	return types.NewParser(c.parse...).Parse(ctx, val)
}

// Format parses value and renders it with spec. If spec contains no "%", it
// names a single field, optionally with directives, as in "YYYYMMDD" or
// "DATE-M1B". An empty spec validates value and returns an empty string.
func Format(ctx context.Context, value any, spec string, opt ...Option) (string, error) {
	cfg := newConfig(opt...)
	ts, err := cfg.timestamp(ctx, value)
	if err != nil {
		return "", err
	}

	if spec == "" {
		return "", nil
	}

	tmpl, err := compileSpec(spec)
	if err != nil {
		return "", err
	}
	//nolint:wrapcheck // Okay to return unwrapped error
	return exec.Render(ctx, tmpl, ts, cfg.render...)
}

// MustFormat is like [Format] but panics on error. Mostly provided for use
// in documentation examples.
func MustFormat(ctx context.Context, value any, spec string, opt ...Option) string {
	str, err := Format(ctx, value, spec, opt...)
	if err != nil {
		panic(err)
	}
	return str
}

// compileSpec compiles a template or a bare field spec.
func compileSpec(spec string) (*ast.Template, error) {
	if strings.Contains(spec, "%") {
		return compile(spec)
	}

	tmpl, err := compile("%" + spec + "%")
	if err != nil {
		return nil, err
	}
	if nodes := tmpl.Nodes(); len(nodes) == 1 {
		if _, ok := nodes[0].(*ast.Field); ok {
			return tmpl, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown field %q", ErrField, spec)
}

// compile parses template, consulting and populating the template cache.
func compile(template string) (*ast.Template, error) {
	if tmpl, ok := cache.Get(template); ok {
		return tmpl, nil
	}
	tmpl, err := parser.Parse(template)
	if err != nil {
		//nolint:wrapcheck // Okay to return unwrapped error
		return nil, err
	}
	cache.Add(template, tmpl)
	return tmpl, nil
}

// Formatter renders templates for a single Timestamp.
type Formatter struct {
	ts  types.Timestamp
	cfg *config
}

// New parses value and returns a Formatter that renders templates for it
// with opt.
func New(ctx context.Context, value any, opt ...Option) (*Formatter, error) {
	cfg := newConfig(opt...)
	ts, err := cfg.timestamp(ctx, value)
	if err != nil {
		return nil, err
	}
	return &Formatter{ts: ts, cfg: cfg}, nil
}

// Timestamp returns the parsed Timestamp.
func (f *Formatter) Timestamp() types.Timestamp { return f.ts }

// Format renders template, substituting args into its "{}" and "{N}"
// slots.
func (f *Formatter) Format(ctx context.Context, template string, args ...any) (string, error) {
	tmpl, err := compile(template)
	if err != nil {
		return "", err
	}
	return f.render(ctx, tmpl, args)
}

func (f *Formatter) render(ctx context.Context, tmpl *ast.Template, args []any) (string, error) {
	opts := append(slices.Clip(f.cfg.render), exec.WithArgs(args...))
	//nolint:wrapcheck // Okay to return unwrapped error
	return exec.Render(ctx, tmpl, f.ts, opts...)
}

// Func returns a function that calls [Formatter.Format] with ctx.
func (f *Formatter) Func(ctx context.Context) func(template string, args ...any) (string, error) {
	return func(template string, args ...any) (string, error) {
		return f.Format(ctx, template, args...)
	}
}

// Template is a compiled format template.
type Template struct {
	*ast.Template
}

// Compile parses template and returns the resulting Template.
func Compile(template string) (*Template, error) {
	tmpl, err := parser.Parse(template)
	if err != nil {
		//nolint:wrapcheck // Okay to return unwrapped error
		return nil, err
	}
	return &Template{tmpl}, nil
}

// MustCompile is like [Compile] but panics on parse failure.
func MustCompile(template string) *Template {
	tmpl, err := Compile(template)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// String returns the normalized template, or an empty string for a null
// Template.
func (t *Template) String() string {
	if t.Template == nil {
		return ""
	}
	return t.Template.String()
}

// Render parses value and renders the template for it. Use [WithArgs] to
// pass extra arguments.
func (t *Template) Render(ctx context.Context, value any, opt ...Option) (string, error) {
	cfg := newConfig(opt...)
	ts, err := cfg.timestamp(ctx, value)
	if err != nil {
		return "", err
	}
	//nolint:wrapcheck // Okay to return unwrapped error
	return exec.Render(ctx, t.Template, ts, cfg.render...)
}

// Execute renders tmpl for the Formatter's Timestamp.
func (f *Formatter) Execute(ctx context.Context, tmpl *Template, args ...any) (string, error) {
	return f.render(ctx, tmpl.Template, args)
}

// Scan implements sql.Scanner so Templates can be read from databases
// transparently. Database types that map to string and []byte are
// supported.
func (t *Template) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		// An empty string is a null Template.
		if src == "" {
			return nil
		}
		tmpl, err := parser.Parse(src)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScan, err)
		}
		*t = Template{tmpl}
	case []byte:
		if len(src) == 0 {
			return nil
		}
		return t.Scan(string(src))
	default:
		return fmt.Errorf("%w: unable to scan type %T into Template", ErrScan, src)
	}

	return nil
}

// Value implements driver.Valuer so that Templates can be written to
// databases transparently as strings. A null Template is written as NULL.
func (t Template) Value() (driver.Value, error) {
	if t.Template == nil {
		return nil, nil
	}
	return t.String(), nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Template) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Template) UnmarshalText(data []byte) error {
	tmpl, err := parser.Parse(string(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScan, err)
	}
	*t = Template{tmpl}
	return nil
}
