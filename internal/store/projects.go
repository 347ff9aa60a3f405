// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/util"
)

const projectColumns = `id, slug, title, category, description, image, tech_stack, screenshots,
	live_url, github_url, year, created_at, updated_at`

// ProjectRepository provides persistence operations for projects.
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Dialect returns the dialect of the underlying database.
func (r *ProjectRepository) Dialect() Dialect {
	return r.db.Dialect
}

// Ping checks connectivity.
func (r *ProjectRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ProjectRepository) scan(row rowScanner) (*model.Project, error) {
	var (
		p         model.Project
		liveURL   sql.NullString
		githubURL sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Category, &p.Description, &p.Image,
		r.db.Dialect.arrayScanner(&p.TechStack),
		r.db.Dialect.arrayScanner(&p.Screenshots),
		&liveURL, &githubURL, &p.Year, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	if p.Screenshots == nil {
		p.Screenshots = []string{}
	}
	p.LiveURL = util.PtrFromNullString(liveURL)
	p.GithubURL = util.PtrFromNullString(githubURL)
	return &p, nil
}

func (r *ProjectRepository) queryOne(ctx context.Context, query string, args ...any) (*model.Project, error) {
	row := r.db.QueryRowContext(ctx, r.db.Dialect.rebind(query), args...)
	p, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all projects ordered by year, then id.
func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY year, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]model.Project, 0, 16)
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBySlug returns the project with the given slug or ErrNotFound.
func (r *ProjectRepository) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	return r.queryOne(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug = ? LIMIT 1`, slug)
}

// GetByID returns the project with the given id or ErrNotFound.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	return r.queryOne(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ? LIMIT 1`, id)
}

// Slugs returns every project slug.
func (r *ProjectRepository) Slugs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slug FROM projects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]string, 0, 16)
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		out = append(out, slug)
	}
	return out, rows.Err()
}

// Count returns the number of projects.
func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n)
	return n, err
}

// Create inserts p and returns the stored row. A slug collision yields
// ErrDuplicateSlug.
func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	now := time.Now().UTC()
	d := r.db.Dialect

	const insert = `INSERT INTO projects
	(slug, title, category, description, image, tech_stack, screenshots, live_url, github_url, year, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := []any{
		p.Slug, p.Title, p.Category, p.Description, p.Image,
		d.arrayValue(p.TechStack), d.arrayValue(p.Screenshots),
		util.NullStringFromPtr(p.LiveURL), util.NullStringFromPtr(p.GithubURL),
		p.Year, now, now,
	}

	var id int64
	if d == DialectPostgres {
		err := r.db.QueryRowContext(ctx, d.rebind(insert+` RETURNING id`), args...).Scan(&id)
		if err != nil {
			return nil, r.writeError("inserting project", err)
		}
	} else {
		res, err := r.db.ExecContext(ctx, insert, args...)
		if err != nil {
			return nil, r.writeError("inserting project", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return nil, fmt.Errorf("reading inserted id: %w", err)
		}
	}

	return r.GetByID(ctx, id)
}

// Update overwrites every mutable column of the project with p.ID and
// refreshes updated_at. A missing row yields ErrNotFound.
func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	d := r.db.Dialect

	const update = `UPDATE projects SET
	slug = ?, title = ?, category = ?, description = ?, image = ?, tech_stack = ?, screenshots = ?,
	live_url = ?, github_url = ?, year = ?, updated_at = ?
	WHERE id = ?`
	res, err := r.db.ExecContext(ctx, d.rebind(update),
		p.Slug, p.Title, p.Category, p.Description, p.Image,
		d.arrayValue(p.TechStack), d.arrayValue(p.Screenshots),
		util.NullStringFromPtr(p.LiveURL), util.NullStringFromPtr(p.GithubURL),
		p.Year, time.Now().UTC(), p.ID,
	)
	if err != nil {
		return nil, r.writeError("updating project", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, p.ID)
}

// Delete removes the project with the given id. Deleting a missing id is
// not an error.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.db.Dialect.rebind(`DELETE FROM projects WHERE id = ?`), id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) writeError(op string, err error) error {
	if r.db.Dialect.isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, ErrDuplicateSlug)
	}
	return fmt.Errorf("%s: %w", op, err)
}
