package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/olegiv/portfolio-go/internal/metrics"
)

// ParseLevel maps a configured level name to a slog.Level. Unknown names
// resolve to INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns the process logger. Development gets colourised tint output,
// production gets JSON. Either way WARN and above are counted in
// portfolio_log_events_total.
func New(w io.Writer, isDev bool, level slog.Level) *slog.Logger {
	var base slog.Handler
	if isDev {
		base = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		base = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	return slog.New(NewMetricsHandler(base, metrics.LogEvents))
}
