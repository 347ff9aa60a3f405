// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/portfolio-go/internal/render"
	"github.com/olegiv/portfolio-go/internal/service"
)

// ContactHandler serves the contact form.
type ContactHandler struct {
	renderer *render.Renderer
	contact  *service.ContactService
	logger   *slog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(renderer *render.Renderer, contact *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{renderer: renderer, contact: contact, logger: logger}
}

// ContactData is the view model for the contact page.
type ContactData struct {
	Sent        bool
	Input       service.ContactInput
	FieldErrors map[string][]string
}

// Form handles GET /contact.
func (h *ContactHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, ContactData{})
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.render(w, r, http.StatusBadRequest, ContactData{})
		return
	}

	in := service.ContactInput{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}

	err := h.contact.Submit(r.Context(), in, r.UserAgent())
	var ve *service.ValidationError
	switch {
	case err == nil:
		h.render(w, r, http.StatusOK, ContactData{Sent: true})
	case errors.As(err, &ve):
		h.render(w, r, http.StatusUnprocessableEntity, ContactData{Input: in, FieldErrors: ve.FieldErrors})
	default:
		h.logger.Error("contact submission failed", "error", err)
		renderPage(w, r, h.renderer, h.logger, http.StatusInternalServerError, tmplError, render.TemplateData{Title: "Error"})
	}
}

func (h *ContactHandler) render(w http.ResponseWriter, r *http.Request, status int, data ContactData) {
	renderPage(w, r, h.renderer, h.logger, status, tmplContact, render.TemplateData{
		Title:       "Contact",
		Description: "Get in touch",
		Data:        data,
	})
}
