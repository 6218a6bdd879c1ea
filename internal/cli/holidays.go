package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/theory/dtformat/format/calendar"
	"github.com/theory/dtformat/format/holiday"
)

// union reports a date as a holiday if any of its calendars does.
type union []calendar.Holidays

// IsHoliday implements calendar.Holidays.
func (u union) IsHoliday(date time.Time) bool {
	for _, h := range u {
		if h.IsHoliday(date) {
			return true
		}
	}
	return false
}

// holidays returns the configured holiday calendar, or nil if none is
// configured.
func (a *app) holidays(ctx context.Context) (calendar.Holidays, error) {
	var hols union
	if a.cfg.Holidays.US {
		hols = append(hols, holiday.Federal{})
	}

	if len(a.cfg.Holidays.Files) > 0 || a.cfg.Holidays.Database != "" {
		set, err := a.holidaySet(ctx)
		if err != nil {
			return nil, err
		}
		hols = append(hols, set)
	}

	switch len(hols) {
	case 0:
		//nolint:nilnil // nil disables holiday handling.
		return nil, nil
	case 1:
		return hols[0], nil
	default:
		return hols, nil
	}
}

// holidaySet merges the configured holiday files and database calendar.
func (a *app) holidaySet(ctx context.Context) (*holiday.Set, error) {
	set := holiday.NewSet()
	for _, path := range a.cfg.Holidays.Files {
		file, err := holiday.LoadFile(path)
		if err != nil {
			return nil, err
		}
		a.logger.DebugContext(ctx, "loaded holiday file", "path", path, "count", file.Len())
		set.Merge(file)
	}

	if a.cfg.Holidays.Database != "" {
		store, err := a.openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		stored, err := store.Load(ctx, a.cfg.Holidays.Calendar)
		if err != nil {
			return nil, err
		}
		set.Merge(stored)
	}

	return set, nil
}

// openStore opens the configured holiday database.
func (a *app) openStore(ctx context.Context) (*holiday.Store, error) {
	if a.cfg.Holidays.Database == "" {
		return nil, fmt.Errorf(
			"%w: no holiday database; use --holiday-db or holidays.database",
			ErrUsage,
		)
	}
	//nolint:wrapcheck // Okay to return unwrapped error
	return holiday.Open(ctx, a.cfg.Holidays.Database, a.logger)
}

func (a *app) holidaysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Manage holiday calendars",
	}
	cmd.AddCommand(
		a.holidaysListCommand(),
		a.holidaysImportCommand(),
		a.holidaysCalendarsCommand(),
		a.holidaysDeleteCommand(),
	)
	return cmd
}

func (a *app) holidaysListCommand() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the configured holidays for a year",
		Args:  errArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if year == 0 {
				year = currentYear(ctx)
			}

			set, err := a.holidaySet(ctx)
			if err != nil {
				return err
			}
			if a.cfg.Holidays.US {
				set.Merge(holiday.US(year))
			}

			out := cmd.OutOrStdout()
			for _, e := range set.Entries(year) {
				fmt.Fprintf(out, "%s\t%s\n", e.Date.Format(time.DateOnly), e.Name)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year to list (default current year)")
	return cmd
}

func (a *app) holidaysImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE...",
		Short: "Import holiday files into the holiday database calendar",
		Long: `Import merges YAML and TOML holiday files and replaces the holidays in
the configured database calendar with the result.`,
		Args: errArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			set := holiday.NewSet()
			for _, path := range args {
				file, err := holiday.LoadFile(path)
				if err != nil {
					return err
				}
				set.Merge(file)
			}

			if err := store.Save(ctx, a.cfg.Holidays.Calendar, set); err != nil {
				return err
			}
			fmt.Fprintf(
				cmd.OutOrStdout(), "imported %d holidays into %q\n",
				set.Len(), a.cfg.Holidays.Calendar,
			)
			return nil
		},
	}
}

func (a *app) holidaysCalendarsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "calendars",
		Short: "List the calendars in the holiday database",
		Args:  errArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			names, err := store.Calendars(ctx)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func (a *app) holidaysDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the configured calendar from the holiday database",
		Args:  errArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(ctx, a.cfg.Holidays.Calendar); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", a.cfg.Holidays.Calendar)
			return nil
		},
	}
}
