package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/01moynul/flowershop-golang/internal/database/migrations"
	"github.com/pressly/goose/v3"
)

// Migrate applies the embedded schema migrations.
//
// goose needs a *sql.DB of its own, so this opens a short-lived pool that is
// closed before returning. Run it once at startup, after the managed
// connection is up.
func Migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}
