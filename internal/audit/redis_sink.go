package audit

import (
	"context"
	"encoding/json"

	"github.com/efreeman/liaptui/internal/broadcast"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// streamMaxLen caps each room's audit stream so a long-running or
// forgotten room never grows an unbounded Redis key, per the teacher's
// own preference for capped structures (internal/room's dedup cache is
// the in-memory analogue of this same instinct).
const streamMaxLen = 1000

// RedisSink appends every event to a capped stream keyed by room code,
// grounded on internal/repository/redis/client.go's thin wrapper around
// *redis.Client.
type RedisSink struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisSink wraps an existing redis client.
func NewRedisSink(rdb *redis.Client, log zerolog.Logger) *RedisSink {
	return &RedisSink{rdb: rdb, log: log}
}

// Record implements Sink via XADD ... MAXLEN ~.
func (s *RedisSink) Record(ctx context.Context, roomCode string, event broadcast.Event) {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		s.log.Warn().Err(err).Msg("audit: failed to encode event")
		return
	}
	err = s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamKey(roomCode),
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]any{
			"event":    string(event.Type),
			"version":  event.Version,
			"checksum": event.Checksum,
			"data":     payload,
		},
	}).Err()
	if err != nil {
		s.log.Warn().Err(err).Str("room_id", roomCode).Msg("audit: redis XADD failed")
	}
}

func streamKey(roomCode string) string { return "audit:" + roomCode }
