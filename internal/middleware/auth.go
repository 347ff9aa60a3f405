// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for admin gating, CSRF
// protection, login throttling and response headers.
package middleware

import (
	"log/slog"
	"net/http"
)

// Paths the admin gate redirects between.
const (
	LoginPath = "/login"
	AdminPath = "/admin"
)

// SessionChecker reports whether a request carries a valid admin session.
type SessionChecker interface {
	IsActive(r *http.Request) bool
}

// RequireAdmin redirects requests without an active admin session to the
// login page. The redirect happens before the handler runs, so no protected
// content is ever rendered.
func RequireAdmin(sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.IsActive(r) {
				slog.Debug("admin session missing, redirecting to login", "path", r.URL.Path)
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectIfAdmin sends visitors who already hold a session away from the
// login form.
func RedirectIfAdmin(sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && sessions.IsActive(r) {
				http.Redirect(w, r, AdminPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
