package room

import (
	"fmt"
	"time"
)

// ActionType identifies the kind of action flowing through a room's
// action queue, one per spec.md §6 inbound event (plus a few internal
// actions with no client-facing equivalent: redeal timeout and
// connection-state housekeeping).
type ActionType string

const (
	ActionJoinRoom      ActionType = "join_room"
	ActionLeaveRoom     ActionType = "leave_room"
	ActionStartGame     ActionType = "start_game"
	ActionAddBot        ActionType = "add_bot"
	ActionRemovePlayer  ActionType = "remove_player"
	ActionDeclare       ActionType = "declare"
	ActionPlay          ActionType = "play"
	ActionAcceptRedeal  ActionType = "accept_redeal"
	ActionDeclineRedeal ActionType = "decline_redeal"
	ActionLeaveGame     ActionType = "leave_game"

	actionRedealTimeout      ActionType = "internal_redeal_timeout"
	actionPlayerConnected    ActionType = "internal_player_connected"
	actionPlayerDisconnected ActionType = "internal_player_disconnected"
)

// JoinPayload carries a new player's requested name.
type JoinPayload struct{ Name string }

// DeclarePayload carries a declaration value.
type DeclarePayload struct{ Value int }

// PlayPayload carries the hand indices of the pieces being played.
type PlayPayload struct{ Indices []int }

// AddBotPayload carries the lobby slot a bot should fill.
type AddBotPayload struct{ Slot int }

// RemovePlayerPayload identifies the player a host wants removed.
type RemovePlayerPayload struct{ PlayerID string }

// Action is one entry in a room's FIFO action queue: who submitted it,
// what kind it is, and its type-specific payload.
type Action struct {
	Type      ActionType
	Seat      int // -1 when not attributable to a single seat
	PlayerID  string
	Payload   interface{}
	Timestamp time.Time
}

// dedupKey builds the (player_id, action_type, relevant-state-hash) key
// spec.md §4.3 calls for: the payload stands in for "relevant state"
// since two submissions of the same type from the same player are only
// true duplicates when their payloads also match.
func (a Action) dedupKey() string {
	return fmt.Sprintf("%s:%s:%d:%+v", a.PlayerID, a.Type, a.Seat, a.Payload)
}

const (
	actionQueueCapacity = 64
	dedupWindowDefault  = 100 * time.Millisecond
	dedupCacheCapacity  = 256
)
