// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/olegiv/portfolio-go/internal/cache"
	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/service"
	"github.com/olegiv/portfolio-go/internal/store"
)

type projectsFixture struct {
	h        *ProjectsHandler
	projects *store.Projects
	pages    *cache.PageCache
}

func newProjectsFixture(t *testing.T, configured bool) *projectsFixture {
	t.Helper()
	var repo store.ProjectRepo
	if configured {
		repo = store.NewProjectRepository(testDB(t))
	}
	projects := store.NewProjects(repo, testLogger())
	pages := testPageCache()
	svc := service.NewProjectService(projects, pages, testLogger())
	return &projectsFixture{
		h:        NewProjectsHandler(testRenderer(t), projects, svc, false, testLogger()),
		projects: projects,
		pages:    pages,
	}
}

func projectForm(title string) url.Values {
	return url.Values{
		"title":       {title},
		"category":    {"Web development"},
		"description": {"A **markdown** description."},
		"image":       {"/uploads/projects/x/cover.jpg"},
		"year":        {"2025"},
		"techStack":   {"Go, HTMX"},
		"screenshots": {""},
		"liveUrl":     {""},
		"githubUrl":   {"https://github.com/example/repo"},
	}
}

func (f *projectsFixture) create(t *testing.T, title string) *model.Project {
	t.Helper()
	w := httptest.NewRecorder()
	f.h.Create(w, newFormRequest(http.MethodPost, "/admin/projects", projectForm(title)))
	assertStatus(t, w.Code, http.StatusSeeOther)

	res := f.projects.ProjectBySlug(context.Background(), slugOf(title))
	if res.Value == nil {
		t.Fatalf("project %q was not stored", title)
	}
	return res.Value
}

func slugOf(title string) string {
	p, err := service.BuildProject(service.ProjectInput{
		Title: title, Category: "x", Description: "x", Image: "x", Year: "2025",
	})
	if err != nil {
		panic(err)
	}
	return p.Slug
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	return body
}

func TestProjects_List(t *testing.T) {
	f := newProjectsFixture(t, false)

	w := httptest.NewRecorder()
	f.h.List(w, httptest.NewRequest(http.MethodGet, "/admin/projects", nil))

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assertContains(t, body, "Showing static data")
	assertContains(t, body, `action="/admin/projects/1/delete"`)
}

func TestProjects_NewForm(t *testing.T) {
	f := newProjectsFixture(t, true)

	w := httptest.NewRecorder()
	f.h.New(w, httptest.NewRequest(http.MethodGet, "/admin/projects/new", nil))

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assertContains(t, body, "New Project")
	assertContains(t, body, `action="/admin/projects"`)
	assertContains(t, body, "Image upload is not configured")
}

func TestProjects_CreateSuccess(t *testing.T) {
	f := newProjectsFixture(t, true)
	ctx := context.Background()
	f.pages.Put(ctx, "/portfolio", []byte("stale"))

	w := httptest.NewRecorder()
	f.h.Create(w, newFormRequest(http.MethodPost, "/admin/projects", projectForm("Hello, World!! 2024")))

	assertStatus(t, w.Code, http.StatusSeeOther)
	if loc := w.Header().Get("Location"); loc != "/admin/projects" {
		t.Errorf("Location = %q", loc)
	}

	res := f.projects.ProjectBySlug(ctx, "hello-world-2024")
	if res.Value == nil {
		t.Fatal("project not stored under derived slug")
	}
	if res.Value.LiveURL != nil {
		t.Errorf("empty liveUrl stored as %q, want absent", *res.Value.LiveURL)
	}
	if _, ok := f.pages.Get(ctx, "/portfolio"); ok {
		t.Error("listing cache not invalidated")
	}
}

func TestProjects_CreateValidationError(t *testing.T) {
	f := newProjectsFixture(t, true)

	form := projectForm("")
	form.Set("year", "abc")

	w := httptest.NewRecorder()
	f.h.Create(w, newFormRequest(http.MethodPost, "/admin/projects", form))

	assertStatus(t, w.Code, http.StatusUnprocessableEntity)
	body := w.Body.String()
	assertContains(t, body, "Title is required")
	assertContains(t, body, "Valid year is required")
	assertContains(t, body, "A **markdown** description.")

	if n := f.projects.CountProjects(context.Background()).Value; n != 0 {
		t.Errorf("count = %d after invalid create", n)
	}
}

func TestProjects_CreateValidationErrorJSON(t *testing.T) {
	f := newProjectsFixture(t, true)

	form := projectForm("Valid")
	form.Del("image")
	req := newFormRequest(http.MethodPost, "/admin/projects", form)
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	f.h.Create(w, req)

	assertStatus(t, w.Code, http.StatusUnprocessableEntity)
	body := decodeJSON(t, w)
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
	fieldErrors, ok := body["fieldErrors"].(map[string]any)
	if !ok || fieldErrors["image"] == nil {
		t.Errorf("fieldErrors = %v, want image entry", body["fieldErrors"])
	}
}

func TestProjects_CreateCollision(t *testing.T) {
	f := newProjectsFixture(t, true)
	f.create(t, "Orizon")

	w := httptest.NewRecorder()
	f.h.Create(w, newFormRequest(http.MethodPost, "/admin/projects", projectForm("ORIZON")))

	assertStatus(t, w.Code, http.StatusConflict)
	assertContains(t, w.Body.String(), "A project with this title already exists")
	if n := f.projects.CountProjects(context.Background()).Value; n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestProjects_CreateWithoutStore(t *testing.T) {
	f := newProjectsFixture(t, false)

	req := newFormRequest(http.MethodPost, "/admin/projects", projectForm("Brand New"))
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	f.h.Create(w, req)

	assertStatus(t, w.Code, http.StatusInternalServerError)
	body := decodeJSON(t, w)
	if body["error"] != service.MsgCreateFailed {
		t.Errorf("error = %v, want %q", body["error"], service.MsgCreateFailed)
	}
	if len(store.StaticProjects()) != store.SeedSize {
		t.Error("static dataset was modified")
	}
}

func TestProjects_Edit(t *testing.T) {
	f := newProjectsFixture(t, true)
	p := f.create(t, "Editable")
	id := strconv.FormatInt(p.ID, 10)

	w := httptest.NewRecorder()
	f.h.Edit(w, withURLParams(httptest.NewRequest(http.MethodGet, "/admin/projects/"+id, nil), "id", id))

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assertContains(t, body, "Edit Project")
	assertContains(t, body, `value="Editable"`)
	assertContains(t, body, `action="/admin/projects/`+id+`"`)
	assertContains(t, body, `value="Go, HTMX"`)
}

func TestProjects_EditMissingRedirects(t *testing.T) {
	f := newProjectsFixture(t, true)

	for _, id := range []string{"999", "abc"} {
		w := httptest.NewRecorder()
		f.h.Edit(w, withURLParams(httptest.NewRequest(http.MethodGet, "/admin/projects/"+id, nil), "id", id))
		assertStatus(t, w.Code, http.StatusSeeOther)
		if loc := w.Header().Get("Location"); loc != "/admin/projects" {
			t.Errorf("id %s: Location = %q", id, loc)
		}
	}
}

func TestProjects_Update(t *testing.T) {
	f := newProjectsFixture(t, true)
	p := f.create(t, "Before")
	id := strconv.FormatInt(p.ID, 10)

	for _, method := range []string{http.MethodPost, http.MethodPut} {
		t.Run(method, func(t *testing.T) {
			title := "After " + method
			req := withURLParams(newFormRequest(method, "/admin/projects/"+id, projectForm(title)), "id", id)
			w := httptest.NewRecorder()
			f.h.Update(w, req)

			assertStatus(t, w.Code, http.StatusSeeOther)
			got := f.projects.ProjectByID(context.Background(), p.ID).Value
			if got == nil || got.Title != title || got.Slug != slugOf(title) {
				t.Errorf("updated project = %+v", got)
			}
		})
	}
}

func TestProjects_UpdateErrors(t *testing.T) {
	f := newProjectsFixture(t, true)
	f.create(t, "Taken")
	other := f.create(t, "Other")
	otherID := strconv.FormatInt(other.ID, 10)

	tests := []struct {
		name   string
		id     string
		form   url.Values
		status int
		errMsg string
	}{
		{"collision", otherID, projectForm("Taken"), http.StatusConflict, service.MsgSlugTaken},
		{"missing", "4242", projectForm("Ghost"), http.StatusNotFound, service.MsgProjectNotFound},
		{"invalid id", "zero", projectForm("Whatever"), http.StatusBadRequest, msgInvalidProjectID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withURLParams(newFormRequest(http.MethodPut, "/admin/projects/"+tt.id, tt.form), "id", tt.id)
			req.Header.Set("Accept", "application/json")
			w := httptest.NewRecorder()
			f.h.Update(w, req)

			assertStatus(t, w.Code, tt.status)
			if body := decodeJSON(t, w); body["error"] != tt.errMsg {
				t.Errorf("error = %v, want %q", body["error"], tt.errMsg)
			}
		})
	}

	got := f.projects.ProjectByID(context.Background(), other.ID).Value
	if got == nil || got.Title != "Other" {
		t.Errorf("failed update changed the project: %+v", got)
	}
}

func TestProjects_DeleteJSON(t *testing.T) {
	f := newProjectsFixture(t, true)
	p := f.create(t, "Doomed")
	id := strconv.FormatInt(p.ID, 10)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		f.h.Delete(w, withURLParams(httptest.NewRequest(http.MethodDelete, "/admin/projects/"+id, nil), "id", id))

		assertStatus(t, w.Code, http.StatusOK)
		if body := decodeJSON(t, w); body["success"] != true {
			t.Errorf("attempt %d: success = %v", i, body["success"])
		}
	}

	if got := f.projects.ProjectByID(context.Background(), p.ID).Value; got != nil {
		t.Errorf("project still present: %+v", got)
	}
}

func TestProjects_DeleteForm(t *testing.T) {
	f := newProjectsFixture(t, true)
	p := f.create(t, "Form Delete")
	id := strconv.FormatInt(p.ID, 10)

	w := httptest.NewRecorder()
	f.h.Delete(w, withURLParams(httptest.NewRequest(http.MethodPost, "/admin/projects/"+id+"/delete", nil), "id", id))

	assertStatus(t, w.Code, http.StatusSeeOther)
	if loc := w.Header().Get("Location"); loc != "/admin/projects" {
		t.Errorf("Location = %q", loc)
	}
}

func TestProjects_DeleteWithoutStore(t *testing.T) {
	f := newProjectsFixture(t, false)

	w := httptest.NewRecorder()
	f.h.Delete(w, withURLParams(httptest.NewRequest(http.MethodDelete, "/admin/projects/1", nil), "id", "1"))

	assertStatus(t, w.Code, http.StatusInternalServerError)
	if body := decodeJSON(t, w); body["error"] != service.MsgDeleteFailed {
		t.Errorf("error = %v", body["error"])
	}
}

func TestMutationStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrSlugTaken, http.StatusConflict},
		{service.ErrProjectNotFound, http.StatusNotFound},
		{&service.PersistenceError{Op: service.OpCreate, Err: store.ErrNotConfigured}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := mutationStatus(tt.err); got != tt.want {
			t.Errorf("mutationStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
