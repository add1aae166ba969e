package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/phrazzld/bookstore-api/internal/platform/postgres"
)

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "source", "goose")
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "source", "goose")
}

// runMigrationCommand executes the given goose command against the embedded
// migration files.
func runMigrationCommand(db *sql.DB, command string, logger *slog.Logger) error {
	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(postgres.MigrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	logger.Info("running migration command", "command", command)

	var err error
	switch command {
	case "up":
		err = goose.Up(db, postgres.MigrationsDir)
	case "down":
		err = goose.Down(db, postgres.MigrationsDir)
	case "status":
		err = goose.Status(db, postgres.MigrationsDir)
	case "version":
		err = goose.Version(db, postgres.MigrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}
	return nil
}
