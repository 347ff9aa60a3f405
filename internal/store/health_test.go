package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/olegiv/portfolio-go/internal/metrics"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthMonitor_NotConfigured(t *testing.T) {
	m := NewHealthMonitor(nil, "")
	h := m.Probe(context.Background())

	assert.False(t, h.Configured)
	assert.Equal(t, "Not Configured", h.Status())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.StoreUp))
}

func TestHealthMonitor_Connected(t *testing.T) {
	m := NewHealthMonitor(stubPinger{}, DialectPostgres)
	h := m.Probe(context.Background())

	assert.True(t, h.Connected)
	assert.Equal(t, "PostgreSQL (Connected)", h.Status())
	assert.Equal(t, h, m.Current())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StoreUp))
}

func TestHealthMonitor_Fallback(t *testing.T) {
	long := "dial tcp 10.0.0.1:5432: connect: connection refused while establishing the initial session"
	m := NewHealthMonitor(stubPinger{err: errors.New(long)}, DialectMySQL)
	h := m.Probe(context.Background())

	assert.False(t, h.Connected)
	assert.Equal(t, "MySQL (Fallback)", h.Status())
	assert.Equal(t, long, h.LastError)

	summary := h.ErrorSummary()
	assert.True(t, strings.HasSuffix(summary, "..."))
	assert.Equal(t, long[:60], strings.TrimSuffix(summary, "..."))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.StoreUp))
}

func TestHealth_ShortErrorUntouched(t *testing.T) {
	h := Health{LastError: "timeout"}
	assert.Equal(t, "timeout", h.ErrorSummary())
}

func TestHealthMonitor_CurrentBeforeProbe(t *testing.T) {
	m := NewHealthMonitor(stubPinger{}, DialectSQLite)
	h := m.Current()
	assert.True(t, h.Configured)
	assert.False(t, h.Connected)
	assert.True(t, h.CheckedAt.IsZero())
}
