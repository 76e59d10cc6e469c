package migrate

import (
	"errors"
	"fmt"
	"log/slog"

	"fiksit-api/internal/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Up applies all pending migrations. An already current schema is not an
// error.
func Up(cfg config.DBConfig) error {
	mig, err := migrate.New("file://"+cfg.MigrationDir, cfg.BuildDSN())
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer mig.Close()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	slog.Info("database migrations applied")
	return nil
}

// Down rolls back one migration step.
func Down(cfg config.DBConfig) error {
	mig, err := migrate.New("file://"+cfg.MigrationDir, cfg.BuildDSN())
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer mig.Close()

	if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("roll back migration: %w", err)
	}

	slog.Info("database migration rolled back")
	return nil
}
