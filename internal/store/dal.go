// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/olegiv/portfolio-go/internal/metrics"
	"github.com/olegiv/portfolio-go/internal/model"
)

// Source tells which backend served a read.
type Source string

// Read sources.
const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
)

// Result is the outcome of a read. Reads never fail: when the store is
// absent or errors, Value holds the static equivalent and Source is
// SourceFallback. Cause carries the store error, if any, for observability.
type Result[T any] struct {
	Value  T
	Source Source
	Cause  error
}

// Degraded reports whether a configured store failed and the static dataset
// was served instead.
func (r Result[T]) Degraded() bool {
	return r.Cause != nil
}

// ProjectRepo is the persistence contract behind Projects.
type ProjectRepo interface {
	List(ctx context.Context) ([]model.Project, error)
	GetBySlug(ctx context.Context, slug string) (*model.Project, error)
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	Slugs(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, p *model.Project) (*model.Project, error)
	Update(ctx context.Context, p *model.Project) (*model.Project, error)
	Delete(ctx context.Context, id int64) error
}

// Projects is the single read/write interface over projects. Callers never
// branch on whether a store is configured.
type Projects struct {
	repo   ProjectRepo
	logger *slog.Logger
}

// NewProjects creates the data access layer. A nil repo selects fallback mode.
func NewProjects(repo ProjectRepo, logger *slog.Logger) *Projects {
	return &Projects{repo: repo, logger: logger}
}

// Configured reports whether a store backs this layer.
func (p *Projects) Configured() bool {
	return p.repo != nil
}

// queryWithFallback runs query against the store, substituting fallback when
// there is no store or the query fails.
func queryWithFallback[T any](ctx context.Context, p *Projects, op string, query func(context.Context) (T, error), fallback func() T) Result[T] {
	if p.repo == nil {
		metrics.ProjectReads.WithLabelValues(op, string(SourceFallback)).Inc()
		return Result[T]{Value: fallback(), Source: SourceFallback}
	}

	v, err := query(ctx)
	if err != nil {
		p.logger.Warn("database query failed, serving static fallback",
			"operation", op,
			"error", err,
		)
		metrics.ProjectReads.WithLabelValues(op, string(SourceFallback)).Inc()
		return Result[T]{Value: fallback(), Source: SourceFallback, Cause: err}
	}

	metrics.ProjectReads.WithLabelValues(op, string(SourcePrimary)).Inc()
	return Result[T]{Value: v, Source: SourcePrimary}
}

// absentAsNil turns ErrNotFound into a nil value so that a missing row is a
// successful primary read, not a store failure.
func absentAsNil(get func(context.Context) (*model.Project, error)) func(context.Context) (*model.Project, error) {
	return func(ctx context.Context) (*model.Project, error) {
		proj, err := get(ctx)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return proj, err
	}
}

// ListProjects returns every project ordered by year, then id.
func (p *Projects) ListProjects(ctx context.Context) Result[[]model.Project] {
	return queryWithFallback(ctx, p, "list",
		func(ctx context.Context) ([]model.Project, error) { return p.repo.List(ctx) },
		StaticProjects,
	)
}

// ProjectBySlug returns the project with slug, or a nil Value when absent.
func (p *Projects) ProjectBySlug(ctx context.Context, slug string) Result[*model.Project] {
	return queryWithFallback(ctx, p, "by_slug",
		absentAsNil(func(ctx context.Context) (*model.Project, error) { return p.repo.GetBySlug(ctx, slug) }),
		func() *model.Project { return staticBySlug(slug) },
	)
}

// ProjectByID returns the project with id, or a nil Value when absent.
func (p *Projects) ProjectByID(ctx context.Context, id int64) Result[*model.Project] {
	return queryWithFallback(ctx, p, "by_id",
		absentAsNil(func(ctx context.Context) (*model.Project, error) { return p.repo.GetByID(ctx, id) }),
		func() *model.Project { return staticByID(id) },
	)
}

// ProjectSlugs returns all project slugs.
func (p *Projects) ProjectSlugs(ctx context.Context) Result[[]string] {
	return queryWithFallback(ctx, p, "slugs",
		func(ctx context.Context) ([]string, error) { return p.repo.Slugs(ctx) },
		staticSlugs,
	)
}

// CountProjects returns the number of projects.
func (p *Projects) CountProjects(ctx context.Context) Result[int64] {
	return queryWithFallback(ctx, p, "count",
		func(ctx context.Context) (int64, error) { return p.repo.Count(ctx) },
		func() int64 { return int64(len(seedProjects)) },
	)
}

// ProjectBySlugStrict looks a slug up in the store only, propagating errors.
// It returns (nil, nil) when the slug is free.
func (p *Projects) ProjectBySlugStrict(ctx context.Context, slug string) (*model.Project, error) {
	if p.repo == nil {
		return nil, ErrNotConfigured
	}
	return absentAsNil(func(ctx context.Context) (*model.Project, error) { return p.repo.GetBySlug(ctx, slug) })(ctx)
}

// ProjectByIDStrict looks an id up in the store only, propagating errors.
// It returns (nil, nil) when no row has that id.
func (p *Projects) ProjectByIDStrict(ctx context.Context, id int64) (*model.Project, error) {
	if p.repo == nil {
		return nil, ErrNotConfigured
	}
	return absentAsNil(func(ctx context.Context) (*model.Project, error) { return p.repo.GetByID(ctx, id) })(ctx)
}

// CreateProject persists a new project. It never touches the static dataset.
func (p *Projects) CreateProject(ctx context.Context, proj *model.Project) (*model.Project, error) {
	if p.repo == nil {
		return nil, ErrNotConfigured
	}
	return p.repo.Create(ctx, proj)
}

// UpdateProject overwrites an existing project.
func (p *Projects) UpdateProject(ctx context.Context, proj *model.Project) (*model.Project, error) {
	if p.repo == nil {
		return nil, ErrNotConfigured
	}
	return p.repo.Update(ctx, proj)
}

// DeleteProject removes a project by id.
func (p *Projects) DeleteProject(ctx context.Context, id int64) error {
	if p.repo == nil {
		return ErrNotConfigured
	}
	return p.repo.Delete(ctx, id)
}
