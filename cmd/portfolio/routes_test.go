package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/olegiv/portfolio-go/internal/config"
)

const testAdminPassword = "correct-horse-battery"

func newTestApp(t *testing.T) (*app, http.Handler) {
	t.Helper()

	cfg := &config.Config{
		SessionSecret:       "test-Secret-key-32-bytes-long!!!",
		ServerHost:          "localhost",
		ServerPort:          8080,
		Env:                 "development",
		AdminPassword:       testAdminPassword,
		MaxUploadMB:         4,
		CachePrefix:         "portfolio:",
		CacheTTL:            60,
		CacheMaxSize:        100,
		HealthProbeSchedule: "@every 1m",
		MetricsEnabled:      true,
		SiteURL:             "https://portfolio.example.com",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := newApp(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	t.Cleanup(a.close)

	return a, a.routes()
}

func TestRoutes_Public(t *testing.T) {
	_, h := newTestApp(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/", http.StatusOK},
		{"/portfolio", http.StatusOK},
		{"/portfolio/finance", http.StatusOK},
		{"/portfolio/does-not-exist", http.StatusNotFound},
		{"/resume", http.StatusOK},
		{"/blog", http.StatusOK},
		{"/contact", http.StatusOK},
		{"/login", http.StatusOK},
		{"/health", http.StatusOK},
		{"/health/live", http.StatusOK},
		{"/health/ready", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/static/dist/site.css", http.StatusOK},
		{"/robots.txt", http.StatusOK},
		{"/sitemap.xml", http.StatusOK},
		{"/nowhere", http.StatusNotFound},
		{"/portfolio/", http.StatusMovedPermanently},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.status {
				t.Errorf("GET %s = %d, want %d", tt.path, w.Code, tt.status)
			}
		})
	}
}

func TestRoutes_StaticCacheHeaders(t *testing.T) {
	_, h := newTestApp(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/dist/admin.js", nil))

	if got := w.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestRoutes_AdminRequiresSession(t *testing.T) {
	_, h := newTestApp(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/admin"},
		{http.MethodGet, "/admin/projects"},
		{http.MethodGet, "/admin/projects/new"},
		{http.MethodPost, "/admin/projects"},
		{http.MethodPost, "/admin/projects/1/delete"},
		{http.MethodDelete, "/admin/projects/1"},
		{http.MethodPost, "/admin/uploads"},
	} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
			t.Errorf("%s %s = %d -> %q, want 303 -> /login", tc.method, tc.path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestRoutes_LoginFlow(t *testing.T) {
	_, h := newTestApp(t)

	form := url.Values{"password": {testAdminPassword}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/admin" {
		t.Fatalf("login = %d -> %q", w.Code, w.Header().Get("Location"))
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login set no cookies")
	}

	dash := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range cookies {
		dash.AddCookie(c)
	}
	w = httptest.NewRecorder()
	h.ServeHTTP(w, dash)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not Configured") {
		t.Error("dashboard should report uploads as not configured")
	}
}

func TestRoutes_CrossOriginPostRejected(t *testing.T) {
	_, h := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Sec-Fetch-Site", "cross-site")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("cross-site POST = %d, want 403", w.Code)
	}
}

func TestRoutes_PostFromSiteOriginAllowed(t *testing.T) {
	_, h := newTestApp(t)

	// Behind a proxy the Host is internal while the browser posts from the
	// public site URL.
	req := httptest.NewRequest(http.MethodPost, "http://10.0.0.5:8080/logout", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	req.Header.Set("Origin", "https://portfolio.example.com")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code == http.StatusForbidden {
		t.Errorf("POST from the site origin = %d, want it past CSRF", w.Code)
	}
}
