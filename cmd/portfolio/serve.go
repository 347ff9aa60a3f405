// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/portfolio-go/internal/auth"
	"github.com/olegiv/portfolio-go/internal/cache"
	"github.com/olegiv/portfolio-go/internal/config"
	"github.com/olegiv/portfolio-go/internal/handler"
	"github.com/olegiv/portfolio-go/internal/imaging"
	"github.com/olegiv/portfolio-go/internal/logging"
	"github.com/olegiv/portfolio-go/internal/middleware"
	"github.com/olegiv/portfolio-go/internal/render"
	"github.com/olegiv/portfolio-go/internal/scheduler"
	"github.com/olegiv/portfolio-go/internal/service"
	"github.com/olegiv/portfolio-go/internal/session"
	"github.com/olegiv/portfolio-go/internal/store"
	"github.com/olegiv/portfolio-go/web"
)

// app holds the wired components shared by the router and shutdown.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	db        *store.DB
	health    *store.HealthMonitor
	pageCache cache.Cache
	scheduler *scheduler.Scheduler

	flash           *scs.SessionManager
	sessions        *session.Store
	loginProtection *middleware.LoginProtection
	contactLimiter  *middleware.FormRateLimiter
	staticFS        fs.FS

	frontend *handler.FrontendHandler
	contact  *handler.ContactHandler
	auth     *handler.AuthHandler
	admin    *handler.AdminHandler
	projects *handler.ProjectsHandler
	upload   *handler.UploadHandler
	healthz  *handler.HealthHandler
	seo      *handler.SEOHandler
}

// newApp wires every component from cfg. A store that cannot be opened or
// migrated is logged and the site runs from the static dataset.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	var repo store.ProjectRepo
	var pinger store.Pinger
	var dialect store.Dialect
	if cfg.StoreConfigured() {
		dbCfg := store.DefaultDBConfig()
		dbCfg.SSL = cfg.DBSSL
		db, err := store.Open(cfg.DatabaseURL, dbCfg)
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		a.db = db
		dialect = db.Dialect

		if err := store.Migrate(ctx, db); err != nil {
			logger.Error("migrations failed, serving static data until the store recovers", "error", err)
		}

		r := store.NewProjectRepository(db)
		repo, pinger = r, r
		logger.Info("store configured", "dialect", dialect.DisplayName())
	} else {
		logger.Warn("DATABASE_URL is not set, serving static project data")
	}

	projects := store.NewProjects(repo, logger)
	a.health = store.NewHealthMonitor(pinger, dialect)

	a.pageCache = cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	}, logger)
	pages := cache.NewPageCache(a.pageCache, logger)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	a.staticFS, err = fs.Sub(web.Static, "static/dist")
	if err != nil {
		return nil, fmt.Errorf("loading static assets: %w", err)
	}

	a.flash = session.NewFlashManager(cfg.IsDevelopment())
	renderer, err := render.New(render.Config{
		TemplatesFS:  templatesFS,
		FlashManager: a.flash,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	a.sessions = session.NewStore(cfg.SessionSecret, cfg.IsDevelopment())
	a.loginProtection = middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	a.contactLimiter = middleware.NewFormRateLimiter(0.2, 3)
	verifier := auth.NewVerifier(cfg.AdminPassword, cfg.AdminPasswordHash, logger)

	var processor *imaging.Processor
	if cfg.UploadsEnabled() {
		processor = imaging.NewProcessor(cfg.UploadsDir)
	}

	projectSvc := service.NewProjectService(projects, pages, logger)
	info := buildInfo()

	a.frontend = handler.NewFrontendHandler(renderer, projects, pages, logger)
	a.contact = handler.NewContactHandler(renderer, service.NewContactService(logger), logger)
	a.auth = handler.NewAuthHandler(renderer, verifier, a.sessions, a.loginProtection, logger)
	a.admin = handler.NewAdminHandler(renderer, projects, a.health, pages, cfg.UploadsEnabled(), info, logger)
	a.projects = handler.NewProjectsHandler(renderer, projects, projectSvc, cfg.UploadsEnabled(), logger)
	a.upload = handler.NewUploadHandler(processor, cfg.MaxUploadBytes(), logger)
	a.healthz = handler.NewHealthHandler(a.health, a.sessions, cfg.UploadsDir, info.Short())
	a.seo = handler.NewSEOHandler(projects, cfg.SiteURL, cfg.RobotsDisallowAll, logger)

	a.scheduler = scheduler.New(logger)
	if err := scheduler.RegisterHealthProbe(a.scheduler, a.health, cfg.HealthProbeSchedule); err != nil {
		return nil, fmt.Errorf("scheduling health probe: %w", err)
	}

	return a, nil
}

// csrfKey derives the 32-byte CSRF key from the session secret.
func (a *app) csrfKey() []byte {
	sum := sha256.Sum256([]byte("csrf:" + a.cfg.SessionSecret))
	return sum[:]
}

// close releases everything newApp acquired.
func (a *app) close() {
	a.scheduler.Stop()
	a.loginProtection.Stop()

	if err := a.pageCache.Close(); err != nil {
		a.logger.Error("error closing cache", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("error closing database", "error", err)
		}
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(os.Stdout, cfg.IsDevelopment(), logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	// First probe so the dashboard and /health are populated before the
	// first scheduled run.
	a.health.Probe(ctx)
	a.scheduler.Start()

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           a.routes(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", appVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
