package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/portfolio-go/internal/seo"
	"github.com/olegiv/portfolio-go/internal/store"
)

// SEOHandler serves robots.txt and sitemap.xml.
type SEOHandler struct {
	projects    *store.Projects
	siteURL     string
	disallowAll bool
	logger      *slog.Logger
}

// NewSEOHandler creates a new SEOHandler. An empty siteURL is derived from
// each request.
func NewSEOHandler(projects *store.Projects, siteURL string, disallowAll bool, logger *slog.Logger) *SEOHandler {
	return &SEOHandler{
		projects:    projects,
		siteURL:     siteURL,
		disallowAll: disallowAll,
		logger:      logger,
	}
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	content := seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.baseURL(r),
		DisallowAll: h.disallowAll,
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(content))
}

// Sitemap handles GET /sitemap.xml. In fallback mode the static slugs are listed.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	slugs := h.projects.ProjectSlugs(r.Context())

	data, err := seo.GenerateSitemap(h.baseURL(r), slugs.Value)
	if err != nil {
		logAndInternalError(w, h.logger, "failed to build sitemap", "error", err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if !slugs.Degraded() {
		w.Header().Set("Cache-Control", "public, max-age=3600")
	}
	_, _ = w.Write(data)
}

func (h *SEOHandler) baseURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
