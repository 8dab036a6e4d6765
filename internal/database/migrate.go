package database

import (
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applique les migrations goose embarquées.
// Utilise le driver stdlib de pgx car goose attend un *sql.DB
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	db := stdlib.OpenDBFromPool(DB)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}
