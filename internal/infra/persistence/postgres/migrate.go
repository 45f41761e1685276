package postgres

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"

	"finsync/internal/errors"
	"finsync/internal/infra/persistence/model"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrator applies the versioned SQL migrations to a PostgreSQL database.
type Migrator struct {
	provider *goose.Provider
}

// NewMigrator builds a goose provider over the embedded migrations.
func NewMigrator(db *sql.DB) (*Migrator, error) {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "open embedded migrations")
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations)
	if err != nil {
		return nil, errors.Wrap(err, "create migration provider")
	}

	return &Migrator{provider: provider}, nil
}

// Up applies every pending migration and returns the versions it ran.
func (m *Migrator) Up(ctx context.Context) ([]int64, error) {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "apply migrations")
	}

	versions := make([]int64, 0, len(results))
	for _, result := range results {
		versions = append(versions, result.Source.Version)
	}

	return versions, nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) (int64, error) {
	result, err := m.provider.Down(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "roll back migration")
	}

	return result.Source.Version, nil
}

// MigrationState is one row of Status.
type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

// Status lists every known migration and whether it is applied.
func (m *Migrator) Status(ctx context.Context) ([]MigrationState, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read migration status")
	}

	states := make([]MigrationState, 0, len(statuses))
	for _, status := range statuses {
		states = append(states, MigrationState{
			Version: status.Source.Version,
			Path:    status.Source.Path,
			Applied: status.State == goose.StateApplied,
		})
	}

	return states, nil
}

// Migrate brings the schema up to date. PostgreSQL runs the versioned SQL
// migrations; SQLite is derived from the models.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if db.Name() != "postgres" {
		return errors.Wrap(
			db.WithContext(ctx).AutoMigrate(&model.RoleModel{}, &model.AccountModel{}, &model.RefreshTokenModel{}),
			"auto-migrate models",
		)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}

	migrator, err := NewMigrator(sqlDB)
	if err != nil {
		return err
	}

	_, err = migrator.Up(ctx)

	return err
}
