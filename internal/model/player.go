package model

import "time"

// PlayerID uniquely identifies a player within the process lifetime.
// It is the ephemeral connection identity assigned by the gateway on connect.
type PlayerID string

// Player represents a room member
type Player struct {
	ID PlayerID `json:"id"`
	// Name is the display name chosen at join time (1-20 chars, see Validate)
	Name string `json:"name"`
	// TurnOrder is the 0-based position assigned at join time
	TurnOrder int `json:"turnOrder"`
	// IsCurrentTurn marks the sole authorized writer of the room's code buffer.
	// Exactly one player has it set while the game is active.
	IsCurrentTurn bool      `json:"isCurrentTurn"`
	JoinedAt      time.Time `json:"joinedAt"`
}
