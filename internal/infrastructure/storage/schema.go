package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id          BIGSERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		company     TEXT NOT NULL DEFAULT '',
		location    TEXT NOT NULL DEFAULT '',
		apply_link  TEXT UNIQUE NOT NULL,
		source      TEXT NOT NULL,
		scraped_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_scraped_at ON jobs (scraped_at DESC)`,
	`CREATE TABLE IF NOT EXISTS users (
		id                 TEXT PRIMARY KEY,
		email              TEXT UNIQUE NOT NULL,
		skills             TEXT[] NOT NULL DEFAULT '{}',
		preferred_location TEXT,
		alerts_enabled     BOOLEAN NOT NULL DEFAULT TRUE
	)`,
}

// EnsureSchema creates the tables on startup when they are missing.
// Statements are idempotent, so running this on every boot is safe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
