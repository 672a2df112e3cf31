package net

import (
	"github.com/mtarnawa/gwentish/internal/game"
	"github.com/mtarnawa/gwentish/internal/log"
)

// Message types for the JSON protocol over WebSocket.

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join" (initial handshake)
	PlayerName string `json:"player_name,omitempty"`
	Deck       string `json:"deck,omitempty"`       // prebuilt deck name
	Difficulty string `json:"difficulty,omitempty"` // bot difficulty

	// For "play"
	Card string `json:"card,omitempty"`
	Row  string `json:"row,omitempty"` // melee | ranged | siege
}

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "joined"
	MatchID  string `json:"match_id,omitempty"`
	PlayerID string `json:"player_id,omitempty"`

	// For "event"
	Event *EventView `json:"event,omitempty"`

	// For "state" (also attached to "joined" and after each event batch)
	State *game.Snapshot `json:"state,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`

	// For "game_over"; Winner is a player id, empty on a draw.
	Winner string `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified match event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Round   int    `json:"round"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Combo   string `json:"combo,omitempty"`
	Details string `json:"details"`
}

func eventView(e log.GameEvent) *EventView {
	return &EventView{
		Seq:     e.Seq,
		Round:   e.Round,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Combo:   e.Combo,
		Details: e.Details,
	}
}
