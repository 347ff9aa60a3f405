package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/olegiv/portfolio-go/internal/auth"
	"github.com/olegiv/portfolio-go/internal/config"
	"github.com/olegiv/portfolio-go/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

// openStoreForCLI opens the configured database for a one-shot command.
func openStoreForCLI() (*store.DB, *slog.Logger, error) {
	cfg, err := config.LoadStore()
	if err != nil {
		return nil, nil, err
	}
	logger := cliLogger(cfg.LogLevel)

	dbCfg := store.DefaultDBConfig()
	dbCfg.SSL = cfg.DBSSL
	db, err := store.Open(cfg.DatabaseURL, dbCfg)
	if err != nil {
		return nil, nil, err
	}

	return db, logger, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			db, logger, err := openStoreForCLI()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			ctx := cmd.Context()
			switch direction {
			case "up":
				if err := store.Migrate(ctx, db); err != nil {
					return err
				}
			case "down":
				if err := store.MigrateDown(ctx, db); err != nil {
					return err
				}
			}

			v, err := store.MigrationVersion(ctx, db)
			if err != nil {
				return err
			}
			logger.Info("migrations", "direction", direction, "dialect", db.Dialect, "version", v)
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema version: %d\n", db.Dialect.DisplayName(), v)
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the seed projects, skipping ones that already exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, logger, err := openStoreForCLI()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			ctx := cmd.Context()
			if err := store.Migrate(ctx, db); err != nil {
				return err
			}

			report, err := store.Seed(ctx, store.NewProjectRepository(db), logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d projects (%d already present)\n", report.Inserted, report.Skipped)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report the projects table status and row count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, err := openStoreForCLI()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			report := store.CheckStatus(cmd.Context(), db)
			return printStatus(cmd, report)
		},
	}
}

// printStatus writes the report and turns failure statuses into an error so
// the process exits non-zero.
func printStatus(cmd *cobra.Command, report store.StatusReport) error {
	switch report.Status {
	case store.StatusMissingTable:
		fmt.Fprintf(cmd.OutOrStdout(), "%s: run `portfolio migrate` first\n", report.Status)
		return errors.New("projects table does not exist")
	case store.StatusError:
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", report.Status)
		return fmt.Errorf("checking status: %w", report.Err)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d projects\n", report.Status, report.Count, store.SeedSize)
		return nil
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print an argon2id hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// runServe loads the full configuration and blocks until shutdown.
func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return serve(ctx, cfg)
}
