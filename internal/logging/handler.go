// Package logging builds the process logger and a slog handler that counts
// WARN and ERROR records in Prometheus so degraded operation shows up on
// /metrics as well as in the log stream.
package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Log categories used as the "category" label.
const (
	CategoryStore  = "store"
	CategoryAuth   = "auth"
	CategoryCache  = "cache"
	CategoryUpload = "upload"
	CategorySystem = "system"
)

// MetricsHandler is a slog.Handler that wraps another handler and also counts
// records at or above a threshold level.
type MetricsHandler struct {
	inner   slog.Handler
	counter *prometheus.CounterVec
	level   slog.Level // Minimum level to count (default: WARN)
}

// NewMetricsHandler creates a MetricsHandler that counts WARN and above into
// counter, which must carry the labels (level, category).
func NewMetricsHandler(inner slog.Handler, counter *prometheus.CounterVec) *MetricsHandler {
	return &MetricsHandler{
		inner:   inner,
		counter: counter,
		level:   slog.LevelWarn,
	}
}

// NewMetricsHandlerWithLevel creates a MetricsHandler with a custom minimum level.
func NewMetricsHandlerWithLevel(inner slog.Handler, counter *prometheus.CounterVec, level slog.Level) *MetricsHandler {
	return &MetricsHandler{
		inner:   inner,
		counter: counter,
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *MetricsHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *MetricsHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level && h.counter != nil {
		h.counter.WithLabelValues(levelLabel(r.Level), extractCategory(r)).Inc()
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *MetricsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &MetricsHandler{
		inner:   h.inner.WithAttrs(attrs),
		counter: h.counter,
		level:   h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *MetricsHandler) WithGroup(name string) slog.Handler {
	return &MetricsHandler{
		inner:   h.inner.WithGroup(name),
		counter: h.counter,
		level:   h.level,
	}
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}

// extractCategory returns the record's "category" attribute, or infers one
// from the message.
func extractCategory(r slog.Record) string {
	var category string

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})

	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "database") || strings.Contains(msg, "store") ||
		strings.Contains(msg, "query") || strings.Contains(msg, "fallback"):
		return CategoryStore
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") ||
		strings.Contains(msg, "password") || strings.Contains(msg, "csrf"):
		return CategoryAuth
	case strings.Contains(msg, "cache") || strings.Contains(msg, "redis"):
		return CategoryCache
	case strings.Contains(msg, "upload") || strings.Contains(msg, "image"):
		return CategoryUpload
	default:
		return CategorySystem
	}
}
