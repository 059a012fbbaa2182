package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func setupGoose() error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	migrationsDir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("get migrations dir: %w", err)
	}
	goose.SetBaseFS(migrationsDir)
	goose.SetLogger(log.StandardLogger())

	return nil
}

// Migrate applies all pending migrations over the given database handle.
func Migrate(db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Infoln("db migrations done")
	return nil
}

// MigratePool runs the migrations through a database/sql view of the pool.
func MigratePool(pool *pgxpool.Pool) error {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Warnf("close migrations sql db: %s", err)
		}
	}()
	return Migrate(sqlDB)
}

// MigrateDown rolls back the latest migration.
func MigrateDown(db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.Down(db, "."); err != nil {
		return fmt.Errorf("rollback migration: %w", err)
	}
	log.Infoln("rolled back one migration")
	return nil
}
