package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// SeedReport summarises a Seed run.
type SeedReport struct {
	Inserted int
	Skipped  int
}

// Seed inserts the seed projects. Projects whose slug already exists are
// skipped, so running it twice is harmless.
func Seed(ctx context.Context, repo *ProjectRepository, logger *slog.Logger) (SeedReport, error) {
	var report SeedReport

	for i := range seedProjects {
		p := seedProjects[i].Clone()

		if _, err := repo.Create(ctx, p); err != nil {
			if errors.Is(err, ErrDuplicateSlug) {
				report.Skipped++
				logger.Info("project already exists, skipping", "slug", p.Slug)
				continue
			}
			return report, fmt.Errorf("seeding %q: %w", p.Slug, err)
		}

		report.Inserted++
		logger.Info("seeded project", "slug", p.Slug, "title", p.Title)
	}

	return report, nil
}
