package net

import (
	"github.com/gabrilend/gen-realms/internal/game"
	"github.com/gabrilend/gen-realms/internal/log"
)

// Message types for the newline-delimited JSON protocol over TCP.

// --- Server → Client messages ---

const (
	MsgWelcome  = "welcome"   // seat assignment, sent once
	MsgState    = "state"     // snapshot plus the events since the last one
	MsgRejected = "rejected"  // the seat's last command was refused
	MsgGameOver = "game_over" // final snapshot with the winner; the server closes afterwards
	MsgError    = "error"     // malformed request
)

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "welcome"
	Match string `json:"match,omitempty"`
	Seat  int    `json:"seat"`
	Seats int    `json:"seats,omitempty"`

	// For "state" and "game_over"
	State  *game.Snapshot `json:"state,omitempty"`
	Events []EventView    `json:"events,omitempty"`

	// For "rejected"
	Rejection *game.Rejection `json:"rejection,omitempty"`

	// For "error"
	Message string `json:"message,omitempty"`
}

// EventView is a game event as sent to clients.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Amount  int    `json:"amount,omitempty"`
	Details string `json:"details"`
}

// NewEventView converts a logged event.
func NewEventView(e log.GameEvent) EventView {
	return EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Phase:   e.Phase,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Amount:  e.Amount,
		Details: e.Details,
	}
}

// --- Client → Server messages ---

const (
	MsgJoin    = "join"
	MsgCommand = "command"
)

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "command". The server overwrites Player with the sender's seat.
	Command *game.Command `json:"command,omitempty"`

	// For "join" (initial handshake)
	DeckNumber int `json:"deck_number,omitempty"`
}
