package holiday

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// schema creates the holiday table.
const schema = `
CREATE TABLE IF NOT EXISTS holidays (
    calendar TEXT NOT NULL,
    day      TEXT NOT NULL,
    name     TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (calendar, day)
)`

// Store persists named holiday calendars in a SQLite database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the SQLite database at dsn. Use ":memory:" for a
// transient database. Logs go to logger; pass nil to discard them.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %v: %w", ErrHoliday, dsn, err)
	}
	// An in-memory database exists only for a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: initialize %v: %w", ErrHoliday, dsn, err)
	}

	logger.DebugContext(ctx, "opened holiday store", "dsn", dsn)
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the holidays in calendar with those in set.
func (s *Store) Save(ctx context.Context, calendar string, set *Set) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrHoliday, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM holidays WHERE calendar = ?", calendar); err != nil {
		return fmt.Errorf("%w: clear %v: %w", ErrHoliday, calendar, err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO holidays (calendar, day, name) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("%w: prepare: %w", ErrHoliday, err)
	}
	defer stmt.Close()

	entries := set.Entries(0)
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, calendar, dateKey(e.Date), e.Name); err != nil {
			return fmt.Errorf("%w: insert %v: %w", ErrHoliday, dateKey(e.Date), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrHoliday, err)
	}

	s.logger.InfoContext(ctx, "saved holidays", "calendar", calendar, "count", len(entries))
	return nil
}

// Load returns the holidays in calendar. An unknown calendar returns an
// empty Set.
func (s *Store) Load(ctx context.Context, calendar string) (*Set, error) {
	rows, err := s.db.QueryContext(
		ctx, "SELECT day, name FROM holidays WHERE calendar = ? ORDER BY day", calendar,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query %v: %w", ErrHoliday, calendar, err)
	}
	defer rows.Close()

	set := NewSet()
	for rows.Next() {
		var day, name string
		if err := rows.Scan(&day, &name); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", ErrHoliday, err)
		}
		date, err := time.Parse(time.DateOnly, day)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid stored date %q: %w", ErrHoliday, day, err)
		}
		set.Add(date, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHoliday, err)
	}

	s.logger.DebugContext(ctx, "loaded holidays", "calendar", calendar, "count", set.Len())
	return set, nil
}

// Calendars returns the sorted names of the calendars in the store.
func (s *Store) Calendars(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT calendar FROM holidays ORDER BY calendar")
	if err != nil {
		return nil, fmt.Errorf("%w: query calendars: %w", ErrHoliday, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", ErrHoliday, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHoliday, err)
	}
	return names, nil
}

// Delete removes calendar from the store.
func (s *Store) Delete(ctx context.Context, calendar string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE calendar = ?", calendar); err != nil {
		return fmt.Errorf("%w: delete %v: %w", ErrHoliday, calendar, err)
	}
	s.logger.InfoContext(ctx, "deleted holidays", "calendar", calendar)
	return nil
}
