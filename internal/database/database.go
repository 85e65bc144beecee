package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrations embed.FS

// OpenCurrent opens the live database (inventory + default lists) at
// the given path and runs its migrations.
func OpenCurrent(dbPath string) (*sql.DB, error) {
	return open(dbPath, "migrations/current")
}

// OpenHistory opens the archive database (historical shopping lists)
// at the given path and runs its migrations.
func OpenHistory(dbPath string) (*sql.DB, error) {
	return open(dbPath, "migrations/history")
}

func open(dbPath, migrationDir string) (*sql.DB, error) {
	// The _pragma form is this driver's own syntax; it applies the
	// pragmas on every pooled connection, not just the first.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := runMigrations(db, migrationDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB, dir string) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
