// Package exec renders parsed format templates.
//
// Rendering a [ast.Field] translates the Timestamp by each of the field's
// directives in order, converts the result to the requested time zone, if
// any, and renders it with the field's rule. Rendering an [ast.Arg] formats
// the corresponding extra argument with "%v". Rendering either succeeds
// completely or returns an error and no output.
package exec

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/theory/dtformat/format/ast"
	"github.com/theory/dtformat/format/calendar"
	"github.com/theory/dtformat/format/types"
)

// Renderer represents the context for template rendering.
type Renderer struct {
	args    []any             // values for {} and {N} slots
	calOpts []calendar.Option // configures directive translation
	zone    string            // zone name resolved by LoadZone
	loc     *time.Location    // zone for conversion after translation
	logger  *slog.Logger
}

// Option specifies a rendering option.
type Option func(*Renderer)

// WithArgs passes the extra arguments for "{}" and "{N}" slots.
func WithArgs(args ...any) Option { return func(r *Renderer) { r.args = args } }

// WithHolidays passes the holiday calendar consulted by day, week, business
// day, month, and year directives.
func WithHolidays(h calendar.Holidays) Option {
	return func(r *Renderer) {
		r.calOpts = append(r.calOpts, calendar.WithHolidays(h))
	}
}

// WithWeekendSnap determines whether translations that land on a weekend
// snap to a weekday when holidays are configured. Defaults to true.
func WithWeekendSnap(ok bool) Option {
	return func(r *Renderer) {
		r.calOpts = append(r.calOpts, calendar.WithWeekendSnap(ok))
	}
}

// WithZeroBusinessDays sets the policy for zero business day directives.
func WithZeroBusinessDays(p calendar.ZeroPolicy) Option {
	return func(r *Renderer) {
		r.calOpts = append(r.calOpts, calendar.WithZeroBusinessDays(p))
	}
}

// WithSearchWindow sets the maximum number of consecutive non-business days
// a translation may pass over.
func WithSearchWindow(days int) Option {
	return func(r *Renderer) {
		r.calOpts = append(r.calOpts, calendar.WithSearchWindow(days))
	}
}

// WithTZ converts translated Timestamps to the named time zone before
// rendering. Accepts any name supported by [types.LoadZone]. An empty name
// disables conversion.
func WithTZ(name string) Option {
	return func(r *Renderer) { r.zone, r.loc = name, nil }
}

// WithLocation converts translated Timestamps to loc before rendering.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) { r.zone, r.loc = "", loc }
}

// WithLogger sets the logger for debug output of each translation.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

func newRenderer(opt ...Option) *Renderer {
	r := &Renderer{}
	for _, o := range opt {
		o(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Render renders tmpl for ts. Returns an error wrapping [types.ErrTimeZone]
// if the time zone is unknown or ts has no time zone to convert from, or
// [types.ErrFormat] if a translation fails or the template references a
// missing argument.
func Render(ctx context.Context, tmpl *ast.Template, ts types.Timestamp, opt ...Option) (string, error) {
	r := newRenderer(opt...)
	if err := r.resolveZone(ts); err != nil {
		return "", err
	}

	cal := calendar.New(r.calOpts...)
	buf := new(strings.Builder)
	for _, node := range tmpl.Nodes() {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		switch node := node.(type) {
		case *ast.Literal:
			buf.WriteString(node.Text())
		case *ast.Field:
			str, err := r.renderField(ctx, cal, node, ts)
			if err != nil {
				return "", err
			}
			buf.WriteString(str)
		case *ast.Arg:
			if node.Index() >= len(r.args) {
				return "", fmt.Errorf(
					"%w: template references argument %v but only %d provided",
					types.ErrFormat, node, len(r.args),
				)
			}
			fmt.Fprintf(buf, "%v", r.args[node.Index()])
		default:
			return "", fmt.Errorf("%w: unknown template node %T", types.ErrFormat, node)
		}
	}

	return buf.String(), nil
}

// resolveZone loads the named zone, if any, and verifies that ts can be
// converted to it.
func (r *Renderer) resolveZone(ts types.Timestamp) error {
	if r.zone != "" {
		loc, err := types.LoadZone(r.zone)
		if err != nil {
			return err
		}
		r.loc = loc
	}
	if r.loc == nil {
		return nil
	}
	_, err := ts.In(r.loc)
	return err
}

// renderField applies the directives of field to ts, converts the result
// to the configured zone, and renders it.
func (r *Renderer) renderField(
	ctx context.Context,
	cal *calendar.Calendar,
	field *ast.Field,
	ts types.Timestamp,
) (string, error) {
	for _, dir := range field.Directives() {
		res, err := cal.Translate(ts, dir.Unit(), dir.Amount())
		if err != nil {
			return "", err
		}
		r.logger.DebugContext(
			ctx, "translated timestamp",
			"field", field.Name(),
			"directive", dir.String(),
			"from", ts,
			"to", res,
		)
		ts = res
	}

	if r.loc != nil {
		res, err := ts.In(r.loc)
		if err != nil {
			return "", err
		}
		ts = res
	}

	return field.Rule().Render(ts), nil
}
