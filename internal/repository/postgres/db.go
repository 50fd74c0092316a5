// Package postgres backs the optional durable audit sink
// (internal/audit.PostgresSink). Grounded on the teacher's
// repository/postgres/db.go connection pool setup; the rest of that
// package's repositories (games, users, phases/orders) have no
// equivalent here since this engine keeps no durable game state.
package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Connect opens a connection pool for the audit trail's Postgres sink.
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// Schema is the audit trail's single table, executed once at startup
// when DATABASE_URL is configured.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id         BIGSERIAL PRIMARY KEY,
	room_id    TEXT NOT NULL,
	sequence   INTEGER NOT NULL,
	event      TEXT NOT NULL,
	checksum   TEXT,
	data       JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS audit_events_room_id_idx ON audit_events (room_id, sequence);
`

// Migrate applies the audit trail's schema. Idempotent.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
