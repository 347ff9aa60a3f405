// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"log/slog"

	"github.com/olegiv/portfolio-go/internal/store"
)

// HealthProbeJob is the name of the store health probe.
const HealthProbeJob = "store-health-probe"

// Prober records the state of the store.
type Prober interface {
	Probe(ctx context.Context) store.Health
}

// RegisterHealthProbe pings the store on schedule. Connectivity changes are
// logged once per transition.
func RegisterHealthProbe(s *Scheduler, prober Prober, schedule string) error {
	return s.Register(HealthProbeJob, schedule, healthProbe(prober, s.logger))
}

func healthProbe(prober Prober, logger *slog.Logger) func(context.Context) {
	var last *bool
	return func(ctx context.Context) {
		h := prober.Probe(ctx)
		if !h.Configured {
			return
		}
		if last != nil && *last == h.Connected {
			return
		}
		connected := h.Connected
		last = &connected

		if connected {
			logger.Info("store reachable", "category", "store", "dialect", h.Dialect)
		} else {
			logger.Warn("store unreachable, serving static fallback",
				"category", "store",
				"dialect", h.Dialect,
				"error", h.LastError,
			)
		}
	}
}
