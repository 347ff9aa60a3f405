package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeSessions bool

func (f fakeSessions) IsActive(*http.Request) bool { return bool(f) }

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name         string
		active       bool
		wantStatus   int
		wantLocation string
		wantCalled   bool
	}{
		{"no session redirects", false, http.StatusSeeOther, "/login", false},
		{"active session passes", true, http.StatusOK, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := RequireAdmin(fakeSessions(tt.active))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				_, _ = w.Write([]byte("secret dashboard"))
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/projects", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if !tt.active && strings.Contains(rec.Body.String(), "secret dashboard") {
				t.Error("protected content leaked to unauthenticated request")
			}
		})
	}
}

func TestRequireAdmin_NoStore(t *testing.T) {
	h := RequireAdmin(fakeSessions(true))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}

func TestRedirectIfAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	RedirectIfAdmin(fakeSessions(true))(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin" {
		t.Errorf("active GET: got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	RedirectIfAdmin(fakeSessions(true))(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("active POST should pass through, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	RedirectIfAdmin(fakeSessions(false))(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("anonymous GET should pass through, got %d", rec.Code)
	}
}
