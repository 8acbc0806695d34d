// internal/common/database/migrate.go
package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded schema for the client's dialect.
// An already up-to-date schema is not an error.
func Migrate(c *SQLClient) error {
	m, err := newMigrator(c)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func newMigrator(c *SQLClient) (*migrate.Migrate, error) {
	switch c.Dialect {
	case DialectPostgres:
		src, err := iofs.New(migrationsFS, "migrations/postgres")
		if err != nil {
			return nil, fmt.Errorf("failed to load postgres migrations: %w", err)
		}
		drv, err := migratepg.WithInstance(c.DB, &migratepg.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to init postgres migration driver: %w", err)
		}
		return migrate.NewWithInstance("iofs", src, "postgres", drv)

	case DialectSQLite:
		src, err := iofs.New(migrationsFS, "migrations/sqlite")
		if err != nil {
			return nil, fmt.Errorf("failed to load sqlite migrations: %w", err)
		}
		drv, err := migratesqlite.WithInstance(c.DB, &migratesqlite.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to init sqlite migration driver: %w", err)
		}
		return migrate.NewWithInstance("iofs", src, "sqlite3", drv)

	default:
		return nil, fmt.Errorf("no migrations for dialect %q", c.Dialect)
	}
}
