// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/portfolio-go/internal/cache"
	"github.com/olegiv/portfolio-go/internal/render"
	"github.com/olegiv/portfolio-go/internal/store"
	"github.com/olegiv/portfolio-go/internal/version"
)

// Image storage labels shown on the dashboard.
const (
	imageStorageReady         = "Local (Ready)"
	imageStorageNotConfigured = "Not Configured"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	renderer       *render.Renderer
	projects       *store.Projects
	health         *store.HealthMonitor
	pages          *cache.PageCache
	uploadsEnabled bool
	version        version.Info
	logger         *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(renderer *render.Renderer, projects *store.Projects, health *store.HealthMonitor, pages *cache.PageCache, uploadsEnabled bool, info version.Info, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		renderer:       renderer,
		projects:       projects,
		health:         health,
		pages:          pages,
		uploadsEnabled: uploadsEnabled,
		version:        info,
		logger:         logger,
	}
}

// DashboardData is the view model for the dashboard.
type DashboardData struct {
	ProjectCount int64
	FromFallback bool
	DBState      string
	DBStatus     string
	DBError      string
	DBErrorFull  string
	ImageStorage string
	CacheBackend string
	Version      string
}

// Dashboard handles GET /admin.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	count := h.projects.CountProjects(r.Context())

	health := h.health.Current()
	if health.Configured && health.CheckedAt.IsZero() {
		// No scheduled probe has run yet.
		health = h.health.Probe(r.Context())
	}

	data := DashboardData{
		ProjectCount: count.Value,
		FromFallback: count.Source == store.SourceFallback,
		DBState:      dbState(health),
		DBStatus:     health.Status(),
		ImageStorage: imageStorageNotConfigured,
		CacheBackend: h.pages.Backend(),
		Version:      h.version.String(),
	}
	if health.Configured && !health.Connected {
		data.DBError = health.ErrorSummary()
		data.DBErrorFull = health.LastError
	}
	if h.uploadsEnabled {
		data.ImageStorage = imageStorageReady
	}

	renderPage(w, r, h.renderer, h.logger, http.StatusOK, tmplDashboard, render.TemplateData{
		Title:   "Dashboard",
		Data:    data,
		IsAdmin: true,
	})
}

// dbState is the CSS modifier for the database status line.
func dbState(h store.Health) string {
	switch {
	case !h.Configured:
		return "absent"
	case h.Connected:
		return "connected"
	default:
		return "fallback"
	}
}
