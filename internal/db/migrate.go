package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"backend-trafella/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var openSQLFn = sql.Open

// Migrate applies every pending migration embedded in the binary.
func Migrate(ctx context.Context, cfg config.Config) error {
	sqlDB, err := openSQLFn("pgx", cfg.PostgresURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
