package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Los gatos se borran con su owner (ON DELETE CASCADE); el servicio de users
// también cascadea, así ambos caminos quedan consistentes.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		seq           BIGSERIAL,
		id            TEXT PRIMARY KEY,
		user_name     TEXT NOT NULL,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'user',
		revision      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (lower(email))`,
	`CREATE TABLE IF NOT EXISTS cats (
		seq       BIGSERIAL,
		id        TEXT PRIMARY KEY,
		name      TEXT NOT NULL,
		weight    DOUBLE PRECISION NOT NULL,
		filename  TEXT NOT NULL DEFAULT '',
		birthdate TIMESTAMPTZ NOT NULL,
		lon       DOUBLE PRECISION NOT NULL,
		lat       DOUBLE PRECISION NOT NULL,
		owner_id  TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		revision  INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS cats_owner_idx ON cats (owner_id)`,
	`CREATE INDEX IF NOT EXISTS cats_lon_lat_idx ON cats (lon, lat)`,
}

// EnsureSchema es idempotente.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
