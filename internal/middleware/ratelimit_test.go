package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLimiterCache_ReusesLimiter(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	if lc.get("a") != lc.get("a") {
		t.Error("expected the same limiter for the same key")
	}
	if lc.get("a") == lc.get("b") {
		t.Error("expected distinct limiters for distinct keys")
	}
}

func TestLimiterCache_ClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[int](1, 1)
	for i := range 5 {
		lc.get(i)
	}

	if lc.clearIfExceeds(10) {
		t.Error("cache under limit should not be cleared")
	}
	if !lc.clearIfExceeds(3) {
		t.Error("cache over limit should be cleared")
	}
	if n := len(lc.limiters); n != 0 {
		t.Errorf("limiters = %d after clear, want 0", n)
	}
}

func TestFormRateLimiter(t *testing.T) {
	l := NewFormRateLimiter(0.0001, 2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	post := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := post("10.0.0.1:1111"); got != http.StatusOK {
		t.Errorf("first post = %d", got)
	}
	if got := post("10.0.0.1:2222"); got != http.StatusOK {
		t.Errorf("second post = %d", got)
	}
	if got := post("10.0.0.1:3333"); got != http.StatusTooManyRequests {
		t.Errorf("third post = %d, want 429", got)
	}
	if got := post("10.0.0.2:1111"); got != http.StatusOK {
		t.Errorf("other client = %d, want 200", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.RemoteAddr = "10.0.0.1:4444"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET should not be limited, got %d", rec.Code)
	}
}

func TestClientIPStripsPort(t *testing.T) {
	tests := map[string]string{
		"192.168.1.1:12345": "192.168.1.1",
		"[::1]:8080":        "::1",
		"10.0.0.1":          "10.0.0.1",
	}
	for addr, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		if got := ClientIP(req); got != want {
			t.Errorf("ClientIP(%q) = %q, want %q", addr, got, want)
		}
	}
}
