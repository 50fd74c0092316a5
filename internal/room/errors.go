package room

import "errors"

// Sentinel errors returned by action validation and room lifecycle
// operations. Room.emitError sends an error's text as both the
// outbound error event's code and its message; no code maps them
// with errors.Is.
var (
	ErrRoomNotFound       = errors.New("room: not found")
	ErrRoomFull           = errors.New("room: full")
	ErrNameTaken          = errors.New("room: player name already in use")
	ErrNotHost            = errors.New("room: action requires host")
	ErrGameNotWaiting     = errors.New("room: game already started")
	ErrNotEnoughPlayers   = errors.New("room: need 4 seated players or bots to start")
	ErrWrongPhase         = errors.New("room: action not valid in current phase")
	ErrNotYourTurn        = errors.New("room: not your turn")
	ErrInvalidDeclaration = errors.New("room: invalid declaration value")
	ErrWrongPieceCount    = errors.New("room: wrong piece count for this turn")
	ErrInvalidPlay        = errors.New("room: invalid piece combination")
	ErrUnknownPieceIndex  = errors.New("room: unknown piece index")
	ErrNoRedealPending    = errors.New("room: no redeal decision pending for this seat")
	ErrPlayerNotFound     = errors.New("room: player not found")
	ErrRoomClosed         = errors.New("room: room has been closed")
)
