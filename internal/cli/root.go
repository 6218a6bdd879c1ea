// Package cli implements the dtfmt command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/theory/dtformat/format"
	"github.com/theory/dtformat/format/calendar"
	"github.com/theory/dtformat/format/types"
	"github.com/theory/dtformat/internal/config"
)

// ErrUsage errors denote invalid command-line arguments.
var ErrUsage = errors.New("usage")

// app holds the global flags and the state resolved from them before each
// command runs.
type app struct {
	configPath string
	tz         string
	usHolidays bool
	files      []string
	database   string
	calendar   string
	pivot      int
	snap       bool
	zero       string
	window     int
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
}

// New returns the root dtfmt command.
func New() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "dtfmt",
		Short: "Parse, format, and translate dates and times",
		Long: `dtfmt parses loosely structured dates and times, renders them through
templates such as "%YYYYMMDD-M1B%", and translates them by calendar units,
business days, and holidays.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to TOML config file (default $"+config.EnvVar+")")
	flags.StringVar(&a.tz, "tz", "", "convert zoned values to this time zone before rendering")
	flags.BoolVar(&a.usHolidays, "us-holidays", false, "treat US federal holidays as holidays")
	flags.StringSliceVar(&a.files, "holidays", nil, "YAML or TOML holiday `file`s")
	flags.StringVar(&a.database, "holiday-db", "", "SQLite holiday database `dsn`")
	flags.StringVar(&a.calendar, "calendar", config.DefaultCalendar, "holiday database calendar `name`")
	flags.IntVar(&a.pivot, "pivot", types.DefaultPivot, "two-digit year pivot")
	flags.BoolVar(&a.snap, "weekend-snap", true, "snap translations away from weekends when holidays are configured")
	flags.StringVar(&a.zero, "zero-business-days", calendar.ZeroSnapForward.String(), "zero business day policy: snap or noop")
	flags.IntVar(&a.window, "search-window", calendar.DefaultSearchWindow, "maximum consecutive non-business `days` to pass over")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, or error")
	flags.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		a.formatCommand(),
		a.parseCommand(),
		a.translateCommand(),
		fieldsCommand(),
		a.holidaysCommand(),
	)
	return root
}

// Execute runs the dtfmt command with args.
func Execute(ctx context.Context, args []string) error {
	cmd := New()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// setup loads the configuration, applies flag overrides, and creates the
// logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), a.logLevel, a.logFormat)
	if err != nil {
		return err
	}
	a.logger = logger

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.override(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger.DebugContext(
		cmd.Context(), "configured",
		"config", config.Path(a.configPath),
		"timezone", cfg.Timezone,
		"us_holidays", cfg.Holidays.US,
		"holiday_files", len(cfg.Holidays.Files),
		"holiday_db", cfg.Holidays.Database,
	)
	return nil
}

// override copies explicitly set flags over the configuration.
func (a *app) override(flags *pflag.FlagSet, cfg *config.Config) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "tz":
			cfg.Timezone = a.tz
		case "us-holidays":
			cfg.Holidays.US = a.usHolidays
		case "holidays":
			cfg.Holidays.Files = append(cfg.Holidays.Files, a.files...)
		case "holiday-db":
			cfg.Holidays.Database = a.database
		case "calendar":
			cfg.Holidays.Calendar = a.calendar
		case "pivot":
			cfg.Pivot = a.pivot
		case "weekend-snap":
			cfg.WeekendSnap = a.snap
		case "zero-business-days":
			cfg.ZeroBusinessDays = a.zero
		case "search-window":
			cfg.SearchWindow = a.window
		}
	})
}

// options returns the format options for the configuration.
func (a *app) options(ctx context.Context) ([]format.Option, error) {
	zero, err := a.cfg.ZeroPolicy()
	if err != nil {
		return nil, err
	}

	opts := []format.Option{
		format.WithPivot(a.cfg.Pivot),
		format.WithWeekendSnap(a.cfg.WeekendSnap),
		format.WithZeroBusinessDays(zero),
		format.WithSearchWindow(a.cfg.SearchWindow),
		format.WithLogger(a.logger),
	}
	if a.cfg.Timezone != "" {
		opts = append(opts, format.WithTZ(a.cfg.Timezone))
	}

	hols, err := a.holidays(ctx)
	if err != nil {
		return nil, err
	}
	if hols != nil {
		opts = append(opts, format.WithHolidays(hols))
	}
	return opts, nil
}

// calendarOptions returns the calendar options for the configuration.
func (a *app) calendarOptions(ctx context.Context) ([]calendar.Option, error) {
	zero, err := a.cfg.ZeroPolicy()
	if err != nil {
		return nil, err
	}

	opts := []calendar.Option{
		calendar.WithWeekendSnap(a.cfg.WeekendSnap),
		calendar.WithZeroBusinessDays(zero),
		calendar.WithSearchWindow(a.cfg.SearchWindow),
	}

	hols, err := a.holidays(ctx)
	if err != nil {
		return nil, err
	}
	if hols != nil {
		opts = append(opts, calendar.WithHolidays(hols))
	}
	return opts, nil
}

// value converts a command-line value to a format value. "now" is the
// current time.
func value(arg string) any {
	if arg == "now" {
		return nil
	}
	return arg
}

// currentYear returns the year of the clock in ctx.
func currentYear(ctx context.Context) int {
	return types.ClockFromContext(ctx)().Year()
}

// errArgs returns a cobra.PositionalArgs that validates the argument count
// and wraps failures in ErrUsage.
func errArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
