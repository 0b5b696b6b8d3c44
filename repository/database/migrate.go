package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

func setup() error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}
	return nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// MigrationStatus logs the applied state of every migration.
func MigrationStatus(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}

// Rollback reverts migrations down to target, or only the latest one when target is 0.
func Rollback(ctx context.Context, db *sql.DB, target int64) error {
	if err := setup(); err != nil {
		return err
	}

	var err error
	if target > 0 {
		err = goose.DownToContext(ctx, db, migrationsDir, target)
	} else {
		err = goose.DownContext(ctx, db, migrationsDir)
	}
	if err != nil {
		return fmt.Errorf("rollback migrations: %w", err)
	}
	return nil
}
