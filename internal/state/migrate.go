package state

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// gooseDialect maps a Dialect to the goose dialect name.
func gooseDialect(d Dialect) string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

func configureGoose(d Dialect) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(gooseDialect(d)); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// Migrate runs all pending database migrations.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := MigrateWithDB(ctx, s.db, s.dialect); err != nil {
		return err
	}

	version, err := s.MigrationVersion(ctx)
	if err == nil {
		s.logger.Debug("migrations applied", "version", version)
	}
	return nil
}

// MigrateWithDB runs migrations using a raw database connection.
// This is useful for testing or when you have a db connection from elsewhere.
func MigrateWithDB(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if err := configureGoose(dialect); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// MigrationVersion returns the current migration version.
func (s *SQLStore) MigrationVersion(ctx context.Context) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	if err := configureGoose(s.dialect); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, s.db)
}

// LatestMigrationVersion returns the version of the newest embedded migration.
func LatestMigrationVersion() (int64, error) {
	goose.SetBaseFS(migrations)
	ms, err := goose.CollectMigrations("migrations", 0, goose.MaxVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to collect migrations: %w", err)
	}
	last, err := ms.Last()
	if err != nil {
		return 0, err
	}
	return last.Version, nil
}
