package audit

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/efreeman/liaptui/internal/broadcast"
	"github.com/rs/zerolog"
)

// PostgresSink appends every event to a single append-only table,
// grounded on internal/repository/postgres/phase_repo.go's
// SaveOrders (batch insert of one domain row per recorded fact) —
// repurposed here from "one row per order" to "one row per broadcast
// event." Never queried by this engine; it exists purely so an
// installation can inspect or replay history out of band.
type PostgresSink struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPostgresSink wraps an existing *sql.DB. Callers are expected to
// have already created the audit_events table (room_id text,
// sequence integer, event text, checksum text, data jsonb, created_at
// timestamptz default now()).
func NewPostgresSink(db *sql.DB, log zerolog.Logger) *PostgresSink {
	return &PostgresSink{db: db, log: log}
}

// Record implements Sink.
func (s *PostgresSink) Record(ctx context.Context, roomCode string, event broadcast.Event) {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		s.log.Warn().Err(err).Msg("audit: failed to encode event")
		return
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO audit_events (room_id, sequence, event, checksum, data) VALUES ($1, $2, $3, $4, $5)`,
		roomCode, event.Version, string(event.Type), event.Checksum, payload,
	)
	if err != nil {
		s.log.Warn().Err(err).Str("room_id", roomCode).Msg("audit: postgres insert failed")
	}
}
