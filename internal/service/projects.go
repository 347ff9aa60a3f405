// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the mutation logic behind the admin and contact forms.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/olegiv/portfolio-go/internal/metrics"
	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/store"
	"github.com/olegiv/portfolio-go/internal/util"
)

// Paths affected by any project change.
const (
	PathHome          = "/"
	PathPortfolio     = "/portfolio"
	PathAdminProjects = "/admin/projects"
)

// ProjectPath returns the public detail path for slug.
func ProjectPath(slug string) string {
	return PathPortfolio + "/" + slug
}

// Invalidator drops cached views after a write.
type Invalidator interface {
	Invalidate(ctx context.Context, paths ...string)
	InvalidatePrefix(ctx context.Context, prefix string)
}

// ProjectInput is a create/update submission as raw form strings.
type ProjectInput struct {
	Title       string `form:"title" validate:"required"`
	Category    string `form:"category" validate:"required"`
	Description string `form:"description" validate:"required"`
	Image       string `form:"image" validate:"required"`
	Year        string `form:"year" validate:"required,year"`
	TechStack   string `form:"techStack"`
	Screenshots string `form:"screenshots"`
	LiveURL     string `form:"liveUrl"`
	GithubURL   string `form:"githubUrl"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (in ProjectInput) Trimmed() ProjectInput {
	return ProjectInput{
		Title:       strings.TrimSpace(in.Title),
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Image:       strings.TrimSpace(in.Image),
		Year:        strings.TrimSpace(in.Year),
		TechStack:   strings.TrimSpace(in.TechStack),
		Screenshots: strings.TrimSpace(in.Screenshots),
		LiveURL:     strings.TrimSpace(in.LiveURL),
		GithubURL:   strings.TrimSpace(in.GithubURL),
	}
}

// InputFromProject fills a form from an existing project.
func InputFromProject(p *model.Project) ProjectInput {
	return ProjectInput{
		Title:       p.Title,
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		Year:        strconv.Itoa(p.Year),
		TechStack:   util.JoinList(p.TechStack),
		Screenshots: util.JoinList(p.Screenshots),
		LiveURL:     util.Deref(p.LiveURL),
		GithubURL:   util.Deref(p.GithubURL),
	}
}

var projectMessages = messages{
	"title":       "Title is required",
	"category":    "Category is required",
	"description": "Description is required",
	"image":       "Cover image is required",
	"year":        "Valid year is required",
}

// BuildProject validates in and converts it to a project with a derived
// slug. Every violation is reported at once.
func BuildProject(in ProjectInput) (*model.Project, error) {
	in = in.Trimmed()

	verr := validateStruct(in, projectMessages)
	slug := util.Slugify(in.Title)
	if in.Title != "" && slug == "" {
		verr.add("title", "Title must contain letters or numbers")
	}
	if !verr.empty() {
		return nil, verr
	}

	year, _ := strconv.Atoi(in.Year)
	return &model.Project{
		Slug:        slug,
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		Image:       in.Image,
		TechStack:   util.SplitList(in.TechStack, ","),
		Screenshots: util.SplitList(in.Screenshots, ","),
		LiveURL:     util.OptionalString(in.LiveURL),
		GithubURL:   util.OptionalString(in.GithubURL),
		Year:        year,
	}, nil
}

// ProjectService creates, updates and deletes projects.
type ProjectService struct {
	projects *store.Projects
	pages    Invalidator
	logger   *slog.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(projects *store.Projects, pages Invalidator, logger *slog.Logger) *ProjectService {
	return &ProjectService{projects: projects, pages: pages, logger: logger}
}

// Create validates and stores a new project.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*model.Project, error) {
	p, err := BuildProject(in)
	if err != nil {
		s.record(OpCreate, err)
		return nil, err
	}

	if err := s.checkSlug(ctx, OpCreate, p.Slug, 0); err != nil {
		s.record(OpCreate, err)
		return nil, err
	}

	created, err := s.projects.CreateProject(ctx, p)
	if err != nil {
		err = s.writeFailure(OpCreate, err, "slug", p.Slug)
		s.record(OpCreate, err)
		return nil, err
	}

	s.invalidate(ctx, created.Slug)
	s.logger.Info("project created", "id", created.ID, "slug", created.Slug)
	s.record(OpCreate, nil)
	return created, nil
}

// Update validates and overwrites project id. The slug is re-derived from
// the title, so renaming a project moves its public URL.
func (s *ProjectService) Update(ctx context.Context, id int64, in ProjectInput) (*model.Project, error) {
	p, err := BuildProject(in)
	if err != nil {
		s.record(OpUpdate, err)
		return nil, err
	}
	p.ID = id

	if err := s.checkSlug(ctx, OpUpdate, p.Slug, id); err != nil {
		s.record(OpUpdate, err)
		return nil, err
	}

	current, err := s.projects.ProjectByIDStrict(ctx, id)
	if err != nil {
		err = s.writeFailure(OpUpdate, err, "id", id)
		s.record(OpUpdate, err)
		return nil, err
	}
	if current == nil {
		s.record(OpUpdate, ErrProjectNotFound)
		return nil, ErrProjectNotFound
	}

	updated, err := s.projects.UpdateProject(ctx, p)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.record(OpUpdate, ErrProjectNotFound)
			return nil, ErrProjectNotFound
		}
		err = s.writeFailure(OpUpdate, err, "id", id)
		s.record(OpUpdate, err)
		return nil, err
	}

	s.invalidate(ctx, current.Slug, updated.Slug)
	s.logger.Info("project updated", "id", id, "slug", updated.Slug)
	s.record(OpUpdate, nil)
	return updated, nil
}

// Delete removes project id. A missing id is not an error.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.projects.DeleteProject(ctx, id); err != nil {
		err = s.writeFailure(OpDelete, err, "id", id)
		s.record(OpDelete, err)
		return err
	}

	s.invalidate(ctx)
	s.pages.InvalidatePrefix(ctx, PathPortfolio+"/")
	s.logger.Info("project deleted", "id", id)
	s.record(OpDelete, nil)
	return nil
}

// checkSlug rejects slug when it belongs to a project other than selfID.
func (s *ProjectService) checkSlug(ctx context.Context, op, slug string, selfID int64) error {
	existing, err := s.projects.ProjectBySlugStrict(ctx, slug)
	if err != nil {
		return s.writeFailure(op, err, "slug", slug)
	}
	if existing != nil && existing.ID != selfID {
		s.logger.Info("project slug already taken", "slug", slug, "owner_id", existing.ID)
		return ErrSlugTaken
	}
	return nil
}

// writeFailure maps a store error to ErrSlugTaken or a PersistenceError.
func (s *ProjectService) writeFailure(op string, err error, attrs ...any) error {
	if errors.Is(err, store.ErrDuplicateSlug) {
		s.logger.Info("project slug taken at write time", attrs...)
		return ErrSlugTaken
	}

	s.logger.Error("failed to "+op+" project", append(attrs, "category", "store", "error", err)...)
	return &PersistenceError{Op: op, Err: err}
}

func (s *ProjectService) invalidate(ctx context.Context, slugs ...string) {
	paths := []string{PathHome, PathPortfolio, PathAdminProjects}
	for _, slug := range slugs {
		paths = append(paths, ProjectPath(slug))
	}
	s.pages.Invalidate(ctx, paths...)
}

func (s *ProjectService) record(op string, err error) {
	metrics.ProjectMutations.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &verr):
		return metrics.OutcomeInvalid
	case errors.Is(err, ErrSlugTaken):
		return metrics.OutcomeConflict
	case errors.Is(err, ErrProjectNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, store.ErrNotConfigured):
		return metrics.OutcomeUnavailable
	default:
		return metrics.OutcomeError
	}
}
