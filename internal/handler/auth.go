// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/portfolio-go/internal/auth"
	"github.com/olegiv/portfolio-go/internal/middleware"
	"github.com/olegiv/portfolio-go/internal/render"
	"github.com/olegiv/portfolio-go/internal/session"
)

// Login error messages
const (
	msgPasswordRequired = "Password is required"
	msgInvalidPassword  = "Invalid password"
)

// AuthHandler handles the admin login and logout.
type AuthHandler struct {
	renderer   *render.Renderer
	verifier   *auth.Verifier
	sessions   *session.Store
	protection *middleware.LoginProtection
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. protection may be nil.
func NewAuthHandler(renderer *render.Renderer, verifier *auth.Verifier, sessions *session.Store, protection *middleware.LoginProtection, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		renderer:   renderer,
		verifier:   verifier,
		sessions:   sessions,
		protection: protection,
		logger:     logger,
	}
}

// LoginData is the view model for the login page.
type LoginData struct {
	Configured bool
	Error      string
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, "")
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}

	password := r.PostFormValue("password")
	if password == "" {
		h.renderLogin(w, r, http.StatusUnprocessableEntity, msgPasswordRequired)
		return
	}

	ip := middleware.ClientIP(r)
	if !h.verifier.Verify(password) {
		h.logger.Warn("failed admin login", "category", "auth", "ip", ip)
		if h.protection != nil {
			if locked, d := h.protection.RecordFailedAttempt(ip); locked {
				h.logger.Warn("admin login locked", "category", "auth", "ip", ip, "duration", d)
			}
		}
		h.renderLogin(w, r, http.StatusUnauthorized, msgInvalidPassword)
		return
	}

	if h.protection != nil {
		h.protection.RecordSuccessfulLogin(ip)
	}
	h.sessions.Create(w)
	h.logger.Info("admin logged in", "category", "auth", "ip", ip)
	http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(w)
	http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, msg string) {
	renderPage(w, r, h.renderer, h.logger, status, tmplLogin, render.TemplateData{
		Title: "Admin Login",
		Data: LoginData{
			Configured: h.verifier.Configured(),
			Error:      msg,
		},
	})
}
