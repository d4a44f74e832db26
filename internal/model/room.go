package model

import "time"

// RoomID is a 6-character uppercase alphanumeric room code
type RoomID string

// TurnAction identifies why a turn log entry was recorded
type TurnAction string

const (
	ActionJoined        TurnAction = "joined"
	ActionLeft          TurnAction = "left"
	ActionTurnCompleted TurnAction = "turn_completed"
	ActionTurnExpired   TurnAction = "turn_expired"
	ActionCodeSubmitted TurnAction = "code_submitted"
)

// TurnLogEntry is one record in a room's append-only audit trail
type TurnLogEntry struct {
	PlayerID   PlayerID   `json:"playerId"`
	PlayerName string     `json:"playerName"`
	Action     TurnAction `json:"action"`
	Timestamp  time.Time  `json:"timestamp"`
	// Code is the buffer snapshot for actions where it matters (submit, expiry)
	Code string `json:"code,omitempty"`
}

// Room is a game session: players relay-editing one shared code buffer
// against a problem, under a rotating per-turn countdown.
type Room struct {
	ID      RoomID   `json:"id"`
	Players []Player `json:"players"`
	// CurrentPlayerIndex indexes into Players; re-clamped on every removal
	// so it is always valid while Players is non-empty.
	CurrentPlayerIndex int            `json:"currentPlayerIndex"`
	Code               string         `json:"code"`
	IsGameActive       bool           `json:"isGameActive"`
	Problem            Problem        `json:"problem"`
	TurnLog            []TurnLogEntry `json:"turnLog"`
	StartTime          *time.Time     `json:"startTime,omitempty"`
	EndTime            *time.Time     `json:"endTime,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// CurrentPlayer returns the player whose turn it is, or nil if the room is empty
func (r *Room) CurrentPlayer() *Player {
	if len(r.Players) == 0 || r.CurrentPlayerIndex < 0 || r.CurrentPlayerIndex >= len(r.Players) {
		return nil
	}
	return &r.Players[r.CurrentPlayerIndex]
}

// GetPlayer returns the player with the given ID, or nil if not a member
func (r *Room) GetPlayer(id PlayerID) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// IsFull reports whether the room has reached the problem's player limit
func (r *Room) IsFull() bool {
	return len(r.Players) >= r.Problem.MaxPlayers
}
