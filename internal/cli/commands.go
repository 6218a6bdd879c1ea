package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/theory/dtformat/format"
	"github.com/theory/dtformat/format/calendar"
	"github.com/theory/dtformat/format/field"
	"github.com/theory/dtformat/format/types"
)

func (a *app) formatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format VALUE TEMPLATE [ARG...]",
		Short: "Render a value through a template",
		Long: `Format parses VALUE and renders it through TEMPLATE. A TEMPLATE without
"%" names a single field, optionally with directives. Any ARGs fill the
"{}" and "{N}" slots in the template. Use "now" for the current time.`,
		Example: `  dtfmt format 20050301 YYYYMMDD-M1B
  dtfmt format "2005-03-01 23:59:59" "%DATE% at %HHMM-P1H%"
  dtfmt format now "{} report for %DATE-M1D%" Daily`,
		Args: errArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := a.options(ctx)
			if err != nil {
				return err
			}

			extra := make([]any, len(args)-2)
			for i, arg := range args[2:] {
				extra[i] = arg
			}
			opts = append(opts, format.WithArgs(extra...))

			str, err := format.Format(ctx, value(args[0]), args[1], opts...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), str)
			return nil
		},
	}
}

// parsed is the JSON output of the parse command.
type parsed struct {
	Input     string          `json:"input"`
	Timestamp types.Timestamp `json:"timestamp"`
	Zoned     bool            `json:"zoned"`
	Weekday   string          `json:"weekday"`
	Epoch     int64           `json:"epoch"`
}

func (a *app) parseCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "parse VALUE",
		Short: "Parse a value and print its canonical timestamp",
		Args:  errArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := format.Parse(cmd.Context(), value(args[0]), format.WithPivot(a.cfg.Pivot))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !asJSON {
				fmt.Fprintln(out, ts)
				return nil
			}

			//nolint:wrapcheck // Okay to return unwrapped error
			return json.NewEncoder(out).Encode(parsed{
				Input:     args[0],
				Timestamp: ts,
				Zoned:     ts.Zoned(),
				Weekday:   ts.Weekday().String(),
				Epoch:     ts.GoTime().Unix(),
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (a *app) translateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate VALUE UNIT AMOUNT",
		Short: "Translate a value by an amount of calendar units",
		Long: `Translate parses VALUE and shifts it by AMOUNT units. UNIT is one of
microseconds, seconds, minutes, hours, days, business_days, weeks, months,
or years. AMOUNT may be negative; flags must precede VALUE.`,
		Example: `  dtfmt --us-holidays translate 2021-07-06 business_days -1
  dtfmt translate "2005-01-31 12:00" months 1`,
		Args: errArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ts, err := format.Parse(ctx, value(args[0]), format.WithPivot(a.cfg.Pivot))
			if err != nil {
				return err
			}

			unit, err := calendar.ParseUnit(args[1])
			if err != nil {
				return err
			}

			amount, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: invalid amount %q", ErrUsage, args[2])
			}

			opts, err := a.calendarOptions(ctx)
			if err != nil {
				return err
			}

			res, err := calendar.New(opts...).Translate(ts, unit, amount)
			if err != nil {
				return err
			}
			a.logger.DebugContext(
				ctx, "translated timestamp",
				"from", ts, "unit", unit, "amount", amount, "to", res,
			)
			fmt.Fprintln(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// sampleTime is the Timestamp rendered in the fields listing.
//
//nolint:gochecknoglobals
var sampleTime = time.Date(2005, time.March, 1, 23, 59, 59, 111000000, time.FixedZone("", -5*3600))

func fieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the template fields",
		Args:  errArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			sample := types.FromTime(sampleTime)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FIELD\tEXAMPLE\tDESCRIPTION")
			for _, rule := range field.Rules() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", rule.Name(), rule.Render(sample), rule.Description())
			}
			//nolint:wrapcheck // Okay to return unwrapped error
			return tw.Flush()
		},
	}
}
