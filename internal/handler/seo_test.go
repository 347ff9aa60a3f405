// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/portfolio-go/internal/store"
)

func TestRobots(t *testing.T) {
	h := NewSEOHandler(store.NewProjects(nil, testLogger()), "https://portfolio.example", false, testLogger())

	w := httptest.NewRecorder()
	h.Robots(w, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	assertStatus(t, w.Code, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
	assertContains(t, w.Body.String(), "Disallow: /admin")
	assertContains(t, w.Body.String(), "Sitemap: https://portfolio.example/sitemap.xml")
}

func TestRobots_DerivesSiteURL(t *testing.T) {
	h := NewSEOHandler(store.NewProjects(nil, testLogger()), "", false, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	req.Host = "me.example:8080"
	req.Header.Set("X-Forwarded-Proto", "https")

	w := httptest.NewRecorder()
	h.Robots(w, req)

	assertContains(t, w.Body.String(), "Sitemap: https://me.example:8080/sitemap.xml")
}

func TestSitemap_Fallback(t *testing.T) {
	h := NewSEOHandler(store.NewProjects(nil, testLogger()), "https://portfolio.example", false, testLogger())

	w := httptest.NewRecorder()
	h.Sitemap(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	for _, p := range store.StaticProjects() {
		assertContains(t, body, "<loc>https://portfolio.example/portfolio/"+p.Slug+"</loc>")
	}
	if got := w.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestSitemap_ConnectedStore(t *testing.T) {
	repo := store.NewProjectRepository(testDB(t))
	h := NewSEOHandler(store.NewProjects(repo, testLogger()), "https://portfolio.example", false, testLogger())

	w := httptest.NewRecorder()
	h.Sitemap(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	assertStatus(t, w.Code, http.StatusOK)
	assertNotContains(t, w.Body.String(), "/portfolio/finance")
	assertContains(t, w.Body.String(), "<loc>https://portfolio.example/portfolio</loc>")
}
