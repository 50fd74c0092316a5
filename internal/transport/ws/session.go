package ws

import (
	"encoding/json"

	"github.com/efreeman/liaptui/internal/broadcast"
	"github.com/efreeman/liaptui/internal/conn"
	"github.com/efreeman/liaptui/internal/logger"
	"github.com/efreeman/liaptui/internal/room"
	"github.com/rs/zerolog"
)

// inboundEnvelope matches spec §6's wire shape: {event, data}.
type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// session owns one connected channel's lifetime: it isn't bound to a
// room until the client sends create_room or join_room, mirroring the
// teacher's ws_handler.go pattern of registering a raw connection first
// and only later learning which game it cares about (there: subscribe
// by gameID; here: join/create picks the room).
type session struct {
	conn      *Conn
	manager   *conn.Manager
	lifecycle *room.Lifecycle
	registry  *room.Registry
	log       zerolog.Logger

	playerID   string
	playerName string
	roomCode   string
}

func newSession(c *Conn, mgr *conn.Manager, lc *room.Lifecycle, reg *room.Registry, log zerolog.Logger) *session {
	return &session{conn: c, manager: mgr, lifecycle: lc, registry: reg, log: log, playerID: newPlayerID()}
}

// run drains inbound frames until the channel closes. One goroutine per
// connection, grounded on ws_handler.go's readPump driving a per-message
// dispatch switch.
func (s *session) run() {
	for raw := range s.conn.Recv() {
		var env inboundEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			s.sendDirect(broadcast.EventError, map[string]any{"code": "protocol", "message": "malformed message"})
			continue
		}
		s.dispatch(env)
	}
	if s.roomCode != "" && s.playerName != "" {
		s.manager.Disconnect(s.roomCode, s.playerName)
		if r := s.registry.Get(s.roomCode); r != nil {
			r.NotifyDisconnected(r.SeatByID(s.playerID))
		}
	}
}

func (s *session) dispatch(env inboundEnvelope) {
	var data map[string]any
	_ = json.Unmarshal(env.Data, &data)

	switch env.Event {
	case "create_room":
		s.handleCreateRoom(data)
	case "join_room":
		s.handleJoinRoom(data)
	case "client_ready":
		s.handleClientReady(data)
	case "leave_room":
		s.submit(room.Action{Type: room.ActionLeaveRoom, PlayerID: s.playerID})
	case "leave_game":
		s.submit(room.Action{Type: room.ActionLeaveGame, PlayerID: s.playerID})
	case "add_bot":
		slot, _ := data["slot"].(float64)
		s.submit(room.Action{Type: room.ActionAddBot, PlayerID: s.playerID, Payload: room.AddBotPayload{Slot: int(slot)}})
	case "remove_player":
		targetID, _ := data["player_id"].(string)
		s.submit(room.Action{Type: room.ActionRemovePlayer, PlayerID: s.playerID, Payload: room.RemovePlayerPayload{PlayerID: targetID}})
	case "start_game":
		s.submit(room.Action{Type: room.ActionStartGame, PlayerID: s.playerID})
	case "declare":
		value, _ := data["value"].(float64)
		s.submit(room.Action{Type: room.ActionDeclare, PlayerID: s.playerID, Payload: room.DeclarePayload{Value: int(value)}})
	case "play":
		s.submit(room.Action{Type: room.ActionPlay, PlayerID: s.playerID, Payload: room.PlayPayload{Indices: toIntSlice(data["piece_indices"])}})
	case "request_redeal":
		// Vestigial synonym for accept_redeal: the engine only ever offers
		// a redeal decision to a weak hand (spec.md §4.4), so "requesting"
		// one is the same action as accepting the pending offer.
		s.submit(room.Action{Type: room.ActionAcceptRedeal, PlayerID: s.playerID})
	case "accept_redeal":
		s.submit(room.Action{Type: room.ActionAcceptRedeal, PlayerID: s.playerID})
	case "decline_redeal":
		s.submit(room.Action{Type: room.ActionDeclineRedeal, PlayerID: s.playerID})
	case "redeal_decision":
		accept, _ := data["accept"].(bool)
		if accept {
			s.submit(room.Action{Type: room.ActionAcceptRedeal, PlayerID: s.playerID})
		} else {
			s.submit(room.Action{Type: room.ActionDeclineRedeal, PlayerID: s.playerID})
		}
	case "ping":
		s.sendDirect("ack", map[string]any{})
	case "sync_request":
		s.handleSyncRequest()
	default:
		s.sendDirect(broadcast.EventError, map[string]any{"code": "protocol", "message": "unknown event: " + env.Event})
	}
}

func (s *session) handleCreateRoom(data map[string]any) {
	name, _ := data["player_name"].(string)
	r := s.lifecycle.CreateRoom()
	s.bind(r.Code, name)
	s.sendDirect("create_room", map[string]any{"room_id": r.Code, "host_name": name})
}

func (s *session) handleJoinRoom(data map[string]any) {
	roomID, _ := data["room_id"].(string)
	name, _ := data["player_name"].(string)
	r := s.registry.Get(roomID)
	if r == nil {
		s.sendDirect(broadcast.EventError, map[string]any{"code": "room_not_found", "message": "no such room"})
		return
	}
	s.bind(roomID, name)
}

// handleClientReady reclaims a session by (room_id, player_name), the
// only identity check this engine performs on reconnect (spec §4.6 —
// no token, no credential).
func (s *session) handleClientReady(data map[string]any) {
	roomID, _ := data["room_id"].(string)
	name, _ := data["player_name"].(string)
	r := s.registry.Get(roomID)
	if r == nil {
		s.sendDirect(broadcast.EventError, map[string]any{"code": "room_not_found", "message": "no such room"})
		return
	}
	seat := r.SeatByName(name)
	if seat == -1 {
		s.sendDirect(broadcast.EventError, map[string]any{"code": "player_not_found", "message": "no such player in room"})
		return
	}
	s.playerID = r.Game.Player(seat).ID
	s.bind(roomID, name)
	r.NotifyConnected(seat)
}

func (s *session) bind(roomCode, name string) {
	s.roomCode = roomCode
	s.playerName = name
	queued, _ := s.manager.Connect(roomCode, name, s.playerID, s.conn)
	if len(queued) > 0 {
		msgs := make([]map[string]any, len(queued))
		for i, e := range queued {
			msgs[i] = map[string]any{"event": e.Type, "version": e.Version, "checksum": e.Checksum, "data": e.Data}
		}
		s.sendDirect(broadcast.EventQueuedMessages, map[string]any{"messages": msgs})
	}
	if s.roomCode != "" {
		r := s.registry.Get(s.roomCode)
		if r != nil && r.SeatByID(s.playerID) == -1 {
			r.Submit(room.Action{Type: room.ActionJoinRoom, PlayerID: s.playerID, Payload: room.JoinPayload{Name: name}})
		}
	}
}

func (s *session) handleSyncRequest() {
	r := s.registry.Get(s.roomCode)
	if r == nil {
		return
	}
	r.NotifyConnected(r.SeatByID(s.playerID))
}

func (s *session) submit(a room.Action) {
	if s.roomCode == "" {
		s.sendDirect(broadcast.EventError, map[string]any{"code": "lifecycle", "message": "not joined to a room"})
		return
	}
	r := s.registry.Get(s.roomCode)
	if r == nil {
		s.sendDirect(broadcast.EventError, map[string]any{"code": "lifecycle", "message": "room no longer exists"})
		return
	}
	r.Submit(a)
}

// sendDirect writes an envelope straight to this connection, bypassing
// the broadcast hub — used for replies that exist before the caller is
// registered with any room (create_room) or that are inherently
// per-connection (protocol errors, ack), mirroring the teacher's direct
// welcome-message write right after upgrade.
func (s *session) sendDirect(event any, data map[string]any) {
	encoded, err := json.Marshal(struct {
		Event any            `json:"event"`
		Data  map[string]any `json:"data"`
	}{event, data})
	if err != nil {
		return
	}
	_ = s.conn.Send(encoded)
}

func newPlayerID() string { return "p-" + logger.NewRequestID() }

func toIntSlice(v any) []int {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, e := range raw {
		if f, ok := e.(float64); ok {
			out = append(out, int(f))
		}
	}
	return out
}
