package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olegiv/portfolio-go/internal/handler"
	"github.com/olegiv/portfolio-go/internal/middleware"
)

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
}

// registerCRUD registers standard CRUD routes for a resource.
// Routes: GET /, GET /new, POST /, GET /{id}, PUT /{id}, POST /{id},
// DELETE /{id}, POST /{id}/delete
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	baseID := base + handler.RouteParamID
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base, h.Create)
	r.Get(baseID, h.EditForm)
	r.Put(baseID, h.Update)
	r.Post(baseID, h.Update) // HTML forms can't send PUT
	r.Delete(baseID, h.Delete)
	r.Post(baseID+handler.RouteSuffixDelete, h.Delete)
}

// routes builds the HTTP router.
func (a *app) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	if a.cfg.MetricsEnabled {
		r.Use(middleware.Metrics)
	}
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(a.cfg.IsDevelopment())))
	r.Use(a.flash.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(a.csrfKey(), a.cfg.SiteURL, a.cfg.IsDevelopment())))

	// Probes and metrics
	r.Get(handler.RouteHealth, a.healthz.Health)
	r.Get(handler.RouteHealth+"/live", a.healthz.Liveness)
	r.Get(handler.RouteHealth+"/ready", a.healthz.Readiness)
	if a.cfg.MetricsEnabled {
		r.Handle(handler.RouteMetrics, promhttp.Handler())
	}

	r.Get(handler.RouteRobots, a.seo.Robots)
	r.Get(handler.RouteSitemap, a.seo.Sitemap)

	// Static assets are fingerprint-free, so only a short cache.
	r.With(middleware.StaticCache(time.Hour, false)).Handle(
		handler.RouteStatic+"/dist/*",
		http.StripPrefix(handler.RouteStatic+"/dist/", http.FileServer(http.FS(a.staticFS))),
	)
	if a.cfg.UploadsEnabled() {
		r.With(middleware.StaticCache(365*24*time.Hour, true)).Handle(
			handler.RouteUploads+"/*",
			http.StripPrefix(handler.RouteUploads+"/", http.FileServer(http.Dir(a.cfg.UploadsDir))),
		)
	}

	// Public site
	r.Get(handler.RouteRoot, a.frontend.Home)
	r.Get(handler.RouteResume, a.frontend.Resume)
	r.Get(handler.RoutePortfolio, a.frontend.Portfolio)
	r.Get(handler.RoutePortfolio+handler.RouteParamSlug, a.frontend.Project)
	r.Get(handler.RouteBlog, a.frontend.Blog)
	r.Get(handler.RouteContact, a.contact.Form)
	r.With(a.contactLimiter.Middleware).Post(handler.RouteContact, a.contact.Submit)

	// Login
	r.Group(func(r chi.Router) {
		r.Use(middleware.RedirectIfAdmin(a.sessions))
		r.Get(handler.RouteLogin, a.auth.LoginForm)
		r.With(a.loginProtection.Middleware()).Post(handler.RouteLogin, a.auth.Login)
	})
	r.Post(handler.RouteLogout, a.auth.Logout)

	// Admin
	r.Route(handler.RouteAdmin, func(r chi.Router) {
		r.Use(middleware.RequireAdmin(a.sessions))

		r.Get(handler.RouteRoot, a.admin.Dashboard)
		registerCRUD(r, handler.RouteProjects, crudHandlers{
			List: a.projects.List, NewForm: a.projects.New, Create: a.projects.Create,
			EditForm: a.projects.Edit, Update: a.projects.Update, Delete: a.projects.Delete,
		})
		r.Post(handler.RouteUploads, a.upload.Upload)
	})

	r.NotFound(a.frontend.NotFound)

	return r
}
