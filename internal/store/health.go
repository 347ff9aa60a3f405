package store

import (
	"context"
	"sync"
	"time"

	"github.com/olegiv/portfolio-go/internal/metrics"
)

// maxErrorSummary is how much of a probe error the dashboard shows.
const maxErrorSummary = 60

// Pinger is satisfied by *ProjectRepository.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health is the last known state of the store.
type Health struct {
	Configured bool
	Dialect    Dialect
	Connected  bool
	LastError  string
	CheckedAt  time.Time
}

// Status returns the dashboard label for the store.
func (h Health) Status() string {
	switch {
	case !h.Configured:
		return "Not Configured"
	case h.Connected:
		return h.Dialect.DisplayName() + " (Connected)"
	default:
		return h.Dialect.DisplayName() + " (Fallback)"
	}
}

// ErrorSummary returns at most the first 60 characters of the last error.
func (h Health) ErrorSummary() string {
	r := []rune(h.LastError)
	if len(r) <= maxErrorSummary {
		return h.LastError
	}
	return string(r[:maxErrorSummary]) + "..."
}

// HealthMonitor records the result of periodic store pings.
type HealthMonitor struct {
	pinger  Pinger
	dialect Dialect

	mu      sync.RWMutex
	current Health
}

// NewHealthMonitor creates a monitor. A nil pinger means no store is configured.
func NewHealthMonitor(pinger Pinger, dialect Dialect) *HealthMonitor {
	return &HealthMonitor{
		pinger:  pinger,
		dialect: dialect,
		current: Health{Configured: pinger != nil, Dialect: dialect},
	}
}

// Probe pings the store once and records the outcome.
func (m *HealthMonitor) Probe(ctx context.Context) Health {
	h := Health{Configured: m.pinger != nil, Dialect: m.dialect, CheckedAt: time.Now()}

	if m.pinger != nil {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := m.pinger.Ping(ctx); err != nil {
			h.LastError = err.Error()
		} else {
			h.Connected = true
		}
	}

	if h.Connected {
		metrics.StoreUp.Set(1)
	} else {
		metrics.StoreUp.Set(0)
	}

	m.mu.Lock()
	m.current = h
	m.mu.Unlock()
	return h
}

// Current returns the most recent probe result.
func (m *HealthMonitor) Current() Health {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}
