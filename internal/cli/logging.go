package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// newLogger creates a logger writing to w at level in format "text" or
// "json".
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf(
			"%w: invalid log level %q, must be debug, info, warn, or error",
			ErrUsage, level,
		)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf(
			"%w: invalid log format %q, must be text or json",
			ErrUsage, format,
		)
	}
}
