// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for mutation counters.
const (
	OutcomeSuccess     = "success"
	OutcomeInvalid     = "invalid"
	OutcomeConflict    = "conflict"
	OutcomeNotFound    = "not_found"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

var ProjectReads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "portfolio_project_reads_total",
	Help: "Project reads by operation and the source that served them (primary or fallback)",
}, []string{"operation", "source"})

var ProjectMutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "portfolio_project_mutations_total",
	Help: "Project create/update/delete attempts by outcome",
}, []string{"operation", "outcome"})

var StoreUp = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "portfolio_store_up",
	Help: "1 if the last store health probe succeeded, 0 otherwise (absent store reports 0)",
})

var LogEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "portfolio_log_events_total",
	Help: "Log records at WARN level and above by category",
}, []string{"level", "category"})

var ContactSubmissions = promauto.NewCounter(prometheus.CounterOpts{
	Name: "portfolio_contact_submissions_total",
	Help: "Accepted contact form submissions",
})

var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "portfolio_http_request_duration_seconds",
	Help:    "HTTP request latency by method, route pattern and status code",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route", "status"})
