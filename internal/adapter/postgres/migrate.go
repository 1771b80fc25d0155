package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/Roof-ER21/roof-hr-sub000/internal/config"
)

// Migrate applies all pending goose migrations from the given filesystem.
// goose needs a *sql.DB, so a short-lived stdlib connection is opened for
// the duration of the run.
func Migrate(ctx context.Context, cfg config.DatabaseConfig, migrations fs.FS) error {
	connCfg, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		return fmt.Errorf("parse database DSN: %w", err)
	}

	db := sql.OpenDB(stdlib.GetConnector(*connCfg))
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
