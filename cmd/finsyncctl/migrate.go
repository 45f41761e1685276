package main

import (
	"database/sql"
	"fmt"
	"text/tabwriter"

	"finsync/config"
	"finsync/internal/domain/constants"
	"finsync/internal/infra/persistence/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			RunE:  runMigrateUp,
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE:  runMigrateDown,
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE:  runMigrateStatus,
		},
	)

	return cmd
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// SQLite has no versioned migrations; its schema comes from the models.
	if cfg.Postgres.Driver == constants.DriverSQLite {
		db, err := postgres.Open(cfg.Postgres, logger.Discard)
		if err != nil {
			return err
		}
		if err := postgres.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "sqlite schema is up to date")

		return nil
	}

	return withMigrator(cfg, func(migrator *postgres.Migrator) error {
		versions, err := migrator.Up(cmd.Context())
		if err != nil {
			return err
		}
		if len(versions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")

			return nil
		}
		for _, v := range versions {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d\n", v)
		}

		return nil
	})
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return withMigrator(cfg, func(migrator *postgres.Migrator) error {
		v, err := migrator.Down(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d\n", v)

		return nil
	})
}

func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return withMigrator(cfg, func(migrator *postgres.Migrator) error {
		states, err := migrator.Status(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tSTATE\tFILE")
		for _, state := range states {
			label := "pending"
			if state.Applied {
				label = "applied"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\n", state.Version, label, state.Path)
		}

		return errors.WithStack(w.Flush())
	})
}

// withMigrator opens a plain pgx connection to the primary for the duration of fn.
func withMigrator(cfg *config.Config, fn func(*postgres.Migrator) error) error {
	if cfg.Postgres.Driver == constants.DriverSQLite {
		return errors.New("versioned migrations are only available for postgres")
	}

	db, err := sql.Open("pgx", cfg.Postgres.MasterDSN())
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer db.Close()

	migrator, err := postgres.NewMigrator(db)
	if err != nil {
		return err
	}

	return fn(migrator)
}

// loadConfig skips Validate since migrations need no signing settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnv[config.Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	return cfg, nil
}
