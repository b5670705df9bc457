// Package logging builds the process slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ParseLevel maps debug, info, warn and error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
}

// New returns a tint logger writing to w. Color is used only when color is
// true; timestamps are dropped when noTime is set.
func New(w io.Writer, level slog.Leveler, color, noTime bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !color,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if noTime && a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			if a.Key == "err" && a.Value.Any() == nil {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// Setup installs the default logger on stderr. The returned LevelVar can be
// adjusted later.
func Setup(level string) (*slog.LevelVar, error) {
	ll := &slog.LevelVar{}
	lvl, err := ParseLevel(level)
	ll.Set(lvl)
	// systemd adds its own timestamps.
	underSystemd := os.Getenv("JOURNAL_STREAM") != ""
	logger := New(colorable.NewColorable(os.Stderr), ll, isatty.IsTerminal(os.Stderr.Fd()), underSystemd)
	slog.SetDefault(logger)
	return ll, err
}
