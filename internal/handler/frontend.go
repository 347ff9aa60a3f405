// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/portfolio-go/internal/cache"
	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/render"
	"github.com/olegiv/portfolio-go/internal/store"
	"github.com/olegiv/portfolio-go/internal/util"
)

// featuredCount is how many recent projects the home page shows.
const featuredCount = 3

// FrontendHandler serves the public site.
type FrontendHandler struct {
	renderer *render.Renderer
	projects *store.Projects
	pages    *cache.PageCache
	logger   *slog.Logger
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(renderer *render.Renderer, projects *store.Projects, pages *cache.PageCache, logger *slog.Logger) *FrontendHandler {
	return &FrontendHandler{
		renderer: renderer,
		projects: projects,
		pages:    pages,
		logger:   logger,
	}
}

// HomeData is the view model for the home page.
type HomeData struct {
	Featured []model.Project
}

// CategoryGroup is one section of the portfolio listing.
type CategoryGroup struct {
	Name     string
	Anchor   string
	Projects []model.Project
}

// PortfolioData is the view model for the portfolio listing.
type PortfolioData struct {
	Groups []CategoryGroup
}

// page is a rendered view ready for the cache.
type page struct {
	status    int
	name      string
	data      render.TemplateData
	cacheable bool
}

// Home handles GET /.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, func(ctx context.Context) page {
		res := h.projects.ListProjects(ctx)
		return page{
			status: http.StatusOK,
			name:   tmplHome,
			data: render.TemplateData{
				Title: "About",
				Data:  HomeData{Featured: featured(res.Value, featuredCount)},
			},
			cacheable: !res.Degraded(),
		}
	})
}

// Portfolio handles GET /portfolio.
func (h *FrontendHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, func(ctx context.Context) page {
		res := h.projects.ListProjects(ctx)
		return page{
			status: http.StatusOK,
			name:   tmplPortfolio,
			data: render.TemplateData{
				Title:       "Portfolio",
				Description: "Selected projects",
				Data:        PortfolioData{Groups: groupByCategory(res.Value)},
			},
			cacheable: !res.Degraded(),
		}
	})
}

// Project handles GET /portfolio/{slug}.
func (h *FrontendHandler) Project(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		h.NotFound(w, r)
		return
	}

	h.serveCached(w, r, func(ctx context.Context) page {
		res := h.projects.ProjectBySlug(ctx, slug)
		if res.Value == nil {
			return page{
				status: http.StatusNotFound,
				name:   tmplNotFound,
				data:   render.TemplateData{Title: "Not Found"},
			}
		}
		return page{
			status: http.StatusOK,
			name:   tmplProject,
			data: render.TemplateData{
				Title:       res.Value.Title,
				Description: res.Value.Category,
				Data:        res.Value,
			},
			cacheable: !res.Degraded(),
		}
	})
}

// Resume handles GET /resume.
func (h *FrontendHandler) Resume(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, h.logger, http.StatusOK, tmplResume, render.TemplateData{Title: "Resume"})
}

// Blog handles GET /blog.
func (h *FrontendHandler) Blog(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, h.logger, http.StatusOK, tmplBlog, render.TemplateData{Title: "Blog"})
}

// NotFound renders the 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, h.logger, http.StatusNotFound, tmplNotFound, render.TemplateData{Title: "Not Found"})
}

// serveCached writes the cached body for the request path or renders and
// stores a fresh one. Only successful, non-degraded pages are stored, and
// only if nothing was invalidated while the page was loading.
func (h *FrontendHandler) serveCached(w http.ResponseWriter, r *http.Request, load func(context.Context) page) {
	ctx := r.Context()
	key := r.URL.Path

	if body, ok := h.pages.Get(ctx, key); ok {
		writeHTML(w, http.StatusOK, "HIT", body)
		return
	}

	gen := h.pages.Generation()
	p := load(ctx)
	body, err := h.renderer.Bytes(r, p.name, p.data)
	if err != nil {
		h.logger.Error("failed to render page", "path", key, "template", p.name, "error", err)
		h.renderError(w, r)
		return
	}

	if p.status == http.StatusOK && p.cacheable {
		h.pages.PutIfCurrent(ctx, key, body, gen)
	}
	writeHTML(w, p.status, "MISS", body)
}

func (h *FrontendHandler) renderError(w http.ResponseWriter, r *http.Request) {
	body, err := h.renderer.Bytes(r, tmplError, render.TemplateData{Title: "Error"})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusInternalServerError, "", body)
}

func writeHTML(w http.ResponseWriter, status int, cacheState string, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if cacheState != "" {
		w.Header().Set("X-Cache", cacheState)
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// featured returns up to n projects, newest year first.
func featured(projects []model.Project, n int) []model.Project {
	out := make([]model.Project, 0, n)
	for i := len(projects) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, projects[i])
	}
	return out
}

// groupByCategory groups projects under their category in first-seen order.
func groupByCategory(projects []model.Project) []CategoryGroup {
	categories := model.Categories(projects)
	groups := make([]CategoryGroup, 0, len(categories))
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		index[c] = i
		groups = append(groups, CategoryGroup{Name: c, Anchor: util.Slugify(c)})
	}
	for _, p := range projects {
		g := &groups[index[p.Category]]
		g.Projects = append(g.Projects, p)
	}
	return groups
}
