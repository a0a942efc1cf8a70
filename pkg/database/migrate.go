package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/business_tracker/migrations"
	migrate "github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
)

// Dialect names accepted by RunMigrations. They double as the embedded directories.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// RunMigrations applies every pending up migration for the dialect.
// It opens its own connection because the migrate drivers close the handle they are given.
func RunMigrations(logger *slog.Logger, dialect, dsn string) error {
	var driverName string
	switch dialect {
	case DialectPostgres:
		driverName = "pgx"
	case DialectSQLite:
		driverName = "sqlite3"
	default:
		return fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	migrationDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	var driver migratedb.Driver
	if dialect == DialectPostgres {
		driver, err = postgres.WithInstance(migrationDB, &postgres.Config{})
	} else {
		driver, err = migratesqlite.WithInstance(migrationDB, &migratesqlite.Config{})
	}
	if err != nil {
		migrationDB.Close()
		return fmt.Errorf("could not create %s driver instance for migrations: %w", dialect, err)
	}

	source, err := iofs.New(migrations.FS, dialect)
	if err != nil {
		driver.Close()
		return fmt.Errorf("could not read embedded %s migrations: %w", dialect, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dialect, driver)
	if err != nil {
		driver.Close()
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()

	// Close also releases migrationDB.
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.", slog.String("dialect", dialect))
	} else {
		logger.Info("Database migrations applied successfully.", slog.String("dialect", dialect))
	}
	return nil
}
