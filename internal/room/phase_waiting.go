package room

import (
	"fmt"

	"github.com/efreeman/liaptui/internal/broadcast"
	"github.com/efreeman/liaptui/pkg/liapgame"
)

func handleWaitingAction(r *Room, a Action) error {
	switch a.Type {
	case ActionJoinRoom:
		return handleJoinRoom(r, a)
	case ActionLeaveRoom:
		return handleLeaveRoomLobby(r, a)
	case ActionAddBot:
		return handleAddBot(r, a)
	case ActionRemovePlayer:
		return handleRemovePlayer(r, a)
	case ActionStartGame:
		return handleStartGame(r, a)
	default:
		return ErrWrongPhase
	}
}

func checkWaitingTransition(r *Room) (liapgame.Phase, bool) {
	if r.Game.StartRequested {
		r.Game.StartRequested = false
		r.Game.RoundNumber = 1
		return liapgame.PhasePreparation, true
	}
	return liapgame.PhaseWaiting, false
}

func handleJoinRoom(r *Room, a Action) error {
	payload, _ := a.Payload.(JoinPayload)
	for _, p := range r.Game.Players {
		if p != nil && p.Name == payload.Name {
			return ErrNameTaken
		}
	}
	seat := -1
	for i, p := range r.Game.Players {
		if p == nil {
			seat = i
			break
		}
	}
	if seat == -1 {
		return ErrRoomFull
	}
	player := &liapgame.Player{ID: a.PlayerID, Name: payload.Name, Seat: seat, Connected: true}
	r.Game.Players[seat] = player
	if r.Host == "" {
		r.Host = player.ID
	}
	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventPlayerJoined,
		RoomCode: r.Code,
		Data:     map[string]any{"player_name": payload.Name, "seat": seat},
	})
	return nil
}

func handleLeaveRoomLobby(r *Room, a Action) error {
	seat := r.SeatByID(a.PlayerID)
	if seat == -1 {
		return ErrPlayerNotFound
	}
	wasHost := r.Host == a.PlayerID
	name := r.Game.Players[seat].Name
	r.Game.Players[seat] = nil

	if wasHost {
		r.hub.Broadcast(broadcast.Event{Type: broadcast.EventRoomClosed, RoomCode: r.Code})
		if r.OnClosed != nil {
			r.OnClosed(r.Code)
		}
		return nil
	}
	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventPlayerLeft,
		RoomCode: r.Code,
		Data:     map[string]any{"player_name": name, "seat": seat},
	})
	return nil
}

func handleAddBot(r *Room, a Action) error {
	if a.PlayerID != r.Host {
		return ErrNotHost
	}
	payload, _ := a.Payload.(AddBotPayload)
	if payload.Slot < 0 || payload.Slot > 3 || r.Game.Players[payload.Slot] != nil {
		return ErrRoomFull
	}
	bot := &liapgame.Player{
		ID:        fmt.Sprintf("bot-%s-%d", r.Code, payload.Slot),
		Name:      fmt.Sprintf("Bot %d", payload.Slot+1),
		Seat:      payload.Slot,
		IsBot:     true,
		Connected: true,
	}
	r.Game.Players[payload.Slot] = bot
	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventPlayerJoined,
		RoomCode: r.Code,
		Data:     map[string]any{"player_name": bot.Name, "seat": payload.Slot, "is_bot": true},
	})
	return nil
}

func handleRemovePlayer(r *Room, a Action) error {
	if a.PlayerID != r.Host {
		return ErrNotHost
	}
	payload, _ := a.Payload.(RemovePlayerPayload)
	seat := r.SeatByID(payload.PlayerID)
	if seat == -1 {
		return ErrPlayerNotFound
	}
	name := r.Game.Players[seat].Name
	r.Game.Players[seat] = nil
	r.hub.Broadcast(broadcast.Event{
		Type:     broadcast.EventPlayerLeft,
		RoomCode: r.Code,
		Data:     map[string]any{"player_name": name, "seat": seat},
	})
	return nil
}

func handleStartGame(r *Room, a Action) error {
	if a.PlayerID != r.Host {
		return ErrNotHost
	}
	if r.OccupiedSeats() != 4 {
		return ErrNotEnoughPlayers
	}
	r.Game.StartRequested = true
	return nil
}
