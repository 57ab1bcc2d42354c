package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// seq columns record insertion order; the allocator treats drivers and orders
// in that order.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS drivers (
		seq             BIGSERIAL,
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		shift_hours     DOUBLE PRECISION NOT NULL DEFAULT 0,
		past_week_hours DOUBLE PRECISION[] NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_drivers_seq ON drivers (seq)`,
	`CREATE TABLE IF NOT EXISTS routes (
		route_id      INTEGER PRIMARY KEY CHECK (route_id > 0),
		distance_km   DOUBLE PRECISION NOT NULL CHECK (distance_km >= 0),
		traffic_level TEXT NOT NULL CHECK (traffic_level IN ('Low', 'Medium', 'High')),
		base_time_min DOUBLE PRECISION NOT NULL CHECK (base_time_min >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		seq           BIGSERIAL,
		order_id      TEXT PRIMARY KEY,
		value_rs      DOUBLE PRECISION NOT NULL CHECK (value_rs >= 0),
		route_id      INTEGER NOT NULL,
		delivery_time TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_seq ON orders (seq)`,
	`CREATE TABLE IF NOT EXISTS simulations (
		id               TEXT PRIMARY KEY,
		inputs           JSONB NOT NULL,
		results          JSONB NOT NULL,
		allocated_orders INTEGER NOT NULL,
		skipped_orders   INTEGER NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_simulations_created_at ON simulations (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// InitSchema creates all tables and indexes if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: db is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}
	return nil
}
