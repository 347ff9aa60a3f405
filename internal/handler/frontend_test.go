// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/service"
	"github.com/olegiv/portfolio-go/internal/store"
)

func newFallbackFrontend(t *testing.T) *FrontendHandler {
	t.Helper()
	return NewFrontendHandler(testRenderer(t), store.NewProjects(nil, testLogger()), testPageCache(), testLogger())
}

func TestFrontend_HomeShowsRecentWork(t *testing.T) {
	h := newFallbackFrontend(t)

	w := httptest.NewRecorder()
	h.Home(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assertContains(t, body, "Recent work")
	assertContains(t, body, `href="/portfolio/arrival"`)
	assertNotContains(t, body, `href="/portfolio/finance"`)
}

func TestFrontend_PortfolioIsCached(t *testing.T) {
	h := newFallbackFrontend(t)

	first := httptest.NewRecorder()
	h.Portfolio(first, httptest.NewRequest(http.MethodGet, "/portfolio", nil))
	assertStatus(t, first.Code, http.StatusOK)
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}

	second := httptest.NewRecorder()
	h.Portfolio(second, httptest.NewRequest(http.MethodGet, "/portfolio", nil))
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached body differs from rendered body")
	}

	body := second.Body.String()
	for _, want := range []string{"Web development", "Web design", "Applications", `id="web-development"`} {
		assertContains(t, body, want)
	}
}

func TestFrontend_ProjectDetail(t *testing.T) {
	h := newFallbackFrontend(t)

	w := httptest.NewRecorder()
	h.Project(w, withURLParams(httptest.NewRequest(http.MethodGet, "/portfolio/orizon", nil), "slug", "orizon"))

	assertStatus(t, w.Code, http.StatusOK)
	assertContains(t, w.Body.String(), "<h2>Orizon</h2>")
}

func TestFrontend_ProjectMissingIsNotFound(t *testing.T) {
	h := newFallbackFrontend(t)

	for _, slug := range []string{"does-not-exist", "Bad_Slug"} {
		t.Run(slug, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Project(w, withURLParams(httptest.NewRequest(http.MethodGet, "/portfolio/"+slug, nil), "slug", slug))
			assertStatus(t, w.Code, http.StatusNotFound)
			assertContains(t, w.Body.String(), "Not found")

			if _, ok := h.pages.Get(context.Background(), "/portfolio/"+slug); ok {
				t.Error("404 page must not be cached")
			}
		})
	}
}

func TestFrontend_DegradedReadsAreNotCached(t *testing.T) {
	db := testDB(t)
	projects := store.NewProjects(store.NewProjectRepository(db), testLogger())
	h := NewFrontendHandler(testRenderer(t), projects, testPageCache(), testLogger())

	// A closed pool makes every query fail, so reads come from the fallback.
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	w := httptest.NewRecorder()
	h.Portfolio(w, httptest.NewRequest(http.MethodGet, "/portfolio", nil))
	assertStatus(t, w.Code, http.StatusOK)
	assertContains(t, w.Body.String(), "Orizon")

	if _, ok := h.pages.Get(context.Background(), "/portfolio"); ok {
		t.Error("degraded page was cached")
	}
}

// pausingRepo reads the list, then holds it until released, so a write can
// land between the read and the render.
type pausingRepo struct {
	store.ProjectRepo
	read    chan struct{}
	release chan struct{}
}

func (r *pausingRepo) List(ctx context.Context) ([]model.Project, error) {
	projects, err := r.ProjectRepo.List(ctx)
	if r.read != nil {
		close(r.read)
		r.read = nil
		<-r.release
	}
	return projects, err
}

func TestFrontend_WriteDuringRenderIsNotCached(t *testing.T) {
	repo := &pausingRepo{
		ProjectRepo: store.NewProjectRepository(testDB(t)),
		read:        make(chan struct{}),
		release:     make(chan struct{}),
	}
	read := repo.read
	projects := store.NewProjects(repo, testLogger())
	pages := testPageCache()
	svc := service.NewProjectService(projects, pages, testLogger())
	h := NewFrontendHandler(testRenderer(t), projects, pages, testLogger())

	done := make(chan *httptest.ResponseRecorder)
	go func() {
		w := httptest.NewRecorder()
		h.Portfolio(w, httptest.NewRequest(http.MethodGet, "/portfolio", nil))
		done <- w
	}()

	<-read
	if _, err := svc.Create(context.Background(), service.ProjectInput{
		Title:       "Late Arrival",
		Category:    "Web development",
		Description: "Written while the list was rendering.",
		Image:       "/uploads/projects/x/cover.jpg",
		Year:        "2025",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	close(repo.release)

	stale := <-done
	assertStatus(t, stale.Code, http.StatusOK)
	assertNotContains(t, stale.Body.String(), "Late Arrival")

	w := httptest.NewRecorder()
	h.Portfolio(w, httptest.NewRequest(http.MethodGet, "/portfolio", nil))
	if got := w.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS after a write during render", got)
	}
	assertContains(t, w.Body.String(), "Late Arrival")
}

func TestFrontend_StaticPages(t *testing.T) {
	h := newFallbackFrontend(t)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		path    string
		status  int
	}{
		{"resume", h.Resume, "/resume", http.StatusOK},
		{"blog", h.Blog, "/blog", http.StatusOK},
		{"not found", h.NotFound, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assertStatus(t, w.Code, tt.status)
			if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestGroupByCategory(t *testing.T) {
	projects := []model.Project{
		{Slug: "a", Category: "Web design"},
		{Slug: "b", Category: "Applications"},
		{Slug: "c", Category: "Web design"},
	}

	groups := groupByCategory(projects)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if groups[0].Name != "Web design" || groups[0].Anchor != "web-design" {
		t.Errorf("groups[0] = %+v", groups[0])
	}
	if len(groups[0].Projects) != 2 || groups[0].Projects[1].Slug != "c" {
		t.Errorf("web design projects = %+v", groups[0].Projects)
	}
	if len(groups[1].Projects) != 1 || groups[1].Projects[0].Slug != "b" {
		t.Errorf("applications projects = %+v", groups[1].Projects)
	}

	if got := groupByCategory(nil); len(got) != 0 {
		t.Errorf("groupByCategory(nil) = %v", got)
	}
}

func TestFeatured(t *testing.T) {
	projects := []model.Project{{Slug: "old"}, {Slug: "mid"}, {Slug: "new"}}

	got := featured(projects, 2)
	if len(got) != 2 || got[0].Slug != "new" || got[1].Slug != "mid" {
		t.Errorf("featured = %+v", got)
	}
	if got := featured(projects[:1], 3); len(got) != 1 {
		t.Errorf("featured of one = %+v", got)
	}
}
