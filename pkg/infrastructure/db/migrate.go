package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the schema if it does not exist yet. The stores are small
// configuration and baseline tables; idempotent CREATE IF NOT EXISTS covers
// the lifecycle.
func Migrate(conn *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bio_setting (
			plant      TEXT NOT NULL,
			product    TEXT NOT NULL,
			stock06    TEXT NOT NULL,
			flow       TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (plant, product)
		)`,
		`CREATE TABLE IF NOT EXISTS finalized_event (
			id                 TEXT PRIMARY KEY,
			plant              TEXT NOT NULL,
			product            TEXT NOT NULL,
			delivery_date      TEXT NOT NULL,
			round_index        INTEGER NOT NULL,
			delivery_time      TEXT NOT NULL,
			quantity_per_truck TEXT NOT NULL,
			cancelled          INTEGER NOT NULL DEFAULT 0,
			status             TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_finalized_event_plan
			ON finalized_event (plant, product, delivery_date, round_index)`,
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}
	return nil
}
