// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/render"
	"github.com/olegiv/portfolio-go/internal/service"
	"github.com/olegiv/portfolio-go/internal/store"
)

const msgInvalidProjectID = "Invalid project ID"

// ProjectsHandler handles the admin project CRUD screens.
type ProjectsHandler struct {
	renderer       *render.Renderer
	projects       *store.Projects
	service        *service.ProjectService
	uploadsEnabled bool
	logger         *slog.Logger
}

// NewProjectsHandler creates a new ProjectsHandler.
func NewProjectsHandler(renderer *render.Renderer, projects *store.Projects, svc *service.ProjectService, uploadsEnabled bool, logger *slog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		renderer:       renderer,
		projects:       projects,
		service:        svc,
		uploadsEnabled: uploadsEnabled,
		logger:         logger,
	}
}

// ProjectsListData is the view model for the admin listing.
type ProjectsListData struct {
	Projects     []model.Project
	FromFallback bool
}

// ProjectFormData is the view model for the create and edit forms.
type ProjectFormData struct {
	Input          service.ProjectInput
	FieldErrors    map[string][]string
	Error          string
	IsNew          bool
	Action         string
	Categories     []string
	UploadsEnabled bool
}

// List handles GET /admin/projects.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	res := h.projects.ListProjects(r.Context())
	renderPage(w, r, h.renderer, h.logger, http.StatusOK, tmplProjects, render.TemplateData{
		Title: "Projects",
		Data: ProjectsListData{
			Projects:     res.Value,
			FromFallback: res.Source == store.SourceFallback,
		},
		IsAdmin: true,
	})
}

// New handles GET /admin/projects/new.
func (h *ProjectsHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, h.newForm(service.ProjectInput{}))
}

// Create handles POST /admin/projects.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.badForm(w, r, redirectAdminProjects+RouteSuffixNew)
		return
	}

	in := projectInputFromForm(r)
	p, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeMutationError(w, r, err, h.newForm(in))
		return
	}

	if wantsJSON(r) {
		writeJSONSuccess(w, map[string]any{"project": p})
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminProjects, "Project created successfully")
}

// Edit handles GET /admin/projects/{id}.
func (h *ProjectsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminProjects, msgInvalidProjectID)
		return
	}

	res := h.projects.ProjectByID(r.Context(), id)
	if res.Value == nil {
		flashError(w, r, h.renderer, redirectAdminProjects, service.MsgProjectNotFound)
		return
	}

	h.renderForm(w, r, http.StatusOK, h.editForm(id, service.InputFromProject(res.Value)))
}

// Update handles POST and PUT /admin/projects/{id}.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		h.invalidID(w, r)
		return
	}

	if err := parseForm(w, r); err != nil {
		h.badForm(w, r, projectEditPath(id))
		return
	}

	in := projectInputFromForm(r)
	p, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.writeMutationError(w, r, err, h.editForm(id, in))
		return
	}

	if wantsJSON(r) {
		writeJSONSuccess(w, map[string]any{"project": p})
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminProjects, "Project updated successfully")
}

// Delete handles DELETE /admin/projects/{id} and POST /admin/projects/{id}/delete.
// DELETE always answers with JSON. The POST form answers with JSON when asked
// to and otherwise redirects back to the listing.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	asJSON := r.Method == http.MethodDelete || wantsJSON(r)

	id, ok := parseIDParam(r)
	if !ok {
		if asJSON {
			writeJSONError(w, http.StatusBadRequest, msgInvalidProjectID)
			return
		}
		flashError(w, r, h.renderer, redirectAdminProjects, msgInvalidProjectID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		msg := service.UserMessage(err)
		if msg == "" {
			msg = service.MsgDeleteFailed
		}
		if asJSON {
			writeJSONError(w, http.StatusInternalServerError, msg)
			return
		}
		flashError(w, r, h.renderer, redirectAdminProjects, msg)
		return
	}

	if asJSON {
		writeJSONSuccess(w, nil)
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminProjects, "Project deleted")
}

// writeMutationError maps a service error to a status and writes it as JSON
// or as the re-rendered form.
func (h *ProjectsHandler) writeMutationError(w http.ResponseWriter, r *http.Request, err error, form ProjectFormData) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		if wantsJSON(r) {
			writeJSONFieldErrors(w, ve.FieldErrors)
			return
		}
		form.FieldErrors = ve.FieldErrors
		h.renderForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	status := mutationStatus(err)
	msg := service.UserMessage(err)
	if msg == "" {
		msg = http.StatusText(status)
	}
	if wantsJSON(r) {
		writeJSONError(w, status, msg)
		return
	}
	form.Error = msg
	h.renderForm(w, r, status, form)
}

// mutationStatus returns the HTTP status for a non-validation service error.
func mutationStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSlugTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrProjectNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *ProjectsHandler) invalidID(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		writeJSONError(w, http.StatusBadRequest, msgInvalidProjectID)
		return
	}
	flashError(w, r, h.renderer, redirectAdminProjects, msgInvalidProjectID)
}

func (h *ProjectsHandler) badForm(w http.ResponseWriter, r *http.Request, redirectURL string) {
	if wantsJSON(r) {
		writeJSONError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	flashError(w, r, h.renderer, redirectURL, "Invalid form data")
}

func (h *ProjectsHandler) newForm(in service.ProjectInput) ProjectFormData {
	return ProjectFormData{
		Input:          in,
		IsNew:          true,
		Action:         redirectAdminProjects,
		Categories:     model.FormCategories,
		UploadsEnabled: h.uploadsEnabled,
	}
}

func (h *ProjectsHandler) editForm(id int64, in service.ProjectInput) ProjectFormData {
	return ProjectFormData{
		Input:          in,
		Action:         projectEditPath(id),
		Categories:     model.FormCategories,
		UploadsEnabled: h.uploadsEnabled,
	}
}

func (h *ProjectsHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, form ProjectFormData) {
	title := "Edit Project"
	if form.IsNew {
		title = "New Project"
	}
	renderPage(w, r, h.renderer, h.logger, status, tmplProjectForm, render.TemplateData{
		Title:   title,
		Data:    form,
		IsAdmin: true,
	})
}

func projectEditPath(id int64) string {
	return redirectAdminProjects + "/" + strconv.FormatInt(id, 10)
}

// projectInputFromForm reads a submission from a parsed form.
func projectInputFromForm(r *http.Request) service.ProjectInput {
	return service.ProjectInput{
		Title:       r.PostFormValue("title"),
		Category:    r.PostFormValue("category"),
		Description: r.PostFormValue("description"),
		Image:       r.PostFormValue("image"),
		Year:        r.PostFormValue("year"),
		TechStack:   r.PostFormValue("techStack"),
		Screenshots: r.PostFormValue("screenshots"),
		LiveURL:     r.PostFormValue("liveUrl"),
		GithubURL:   r.PostFormValue("githubUrl"),
	}
}
