package model

import "encoding/json"

// Client -> server event names
const (
	EventJoinRoom     = "join-room"
	EventLeaveRoom    = "leave-room"
	EventUpdateCode   = "update-code"
	EventTurnComplete = "turn-complete"
	EventSubmitCode   = "submit-code"
)

// Server -> client event names
const (
	EventRoomJoined  = "room-joined"
	EventUpdateRoom  = "updateRoom"
	EventCodeUpdated = "code-updated"
	EventTurnChanged = "turn-changed"
	EventTimerTick   = "timer-tick"
	EventGameResult  = "game-result"
	EventError       = "error"
)

// ClientEvent is the envelope for inbound websocket frames.
// Data is decoded into the payload type matching Event.
type ClientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ServerEvent is the envelope for outbound websocket frames
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// JoinRoomPayload carries a join-room command
type JoinRoomPayload struct {
	RoomID     RoomID `json:"roomId"`
	PlayerName string `json:"playerName"`
}

// LeaveRoomPayload carries a leave-room command
type LeaveRoomPayload struct {
	RoomID   RoomID   `json:"roomId"`
	PlayerID PlayerID `json:"playerId"`
}

// UpdateCodePayload carries an update-code command
type UpdateCodePayload struct {
	RoomID RoomID `json:"roomId"`
	Code   string `json:"code"`
}

// TurnCompletePayload carries a turn-complete command
type TurnCompletePayload struct {
	RoomID   RoomID   `json:"roomId"`
	PlayerID PlayerID `json:"playerId"`
}

// SubmitCodePayload carries a submit-code command.
// IsSuccess is the client-reported grading outcome; see execution.ReportedResult.
type SubmitCodePayload struct {
	RoomID    RoomID `json:"roomId"`
	Code      string `json:"code"`
	IsSuccess bool   `json:"isSuccess"`
}

// CodeUpdatedPayload notifies other members that the buffer changed
type CodeUpdatedPayload struct {
	Code     string   `json:"code"`
	PlayerID PlayerID `json:"playerId"`
}

// TurnChangedPayload notifies the room that turn ownership transferred
type TurnChangedPayload struct {
	CurrentPlayer *Player `json:"currentPlayer"`
	TimeRemaining int     `json:"timeRemaining"`
}

// TimerTickPayload is the once-per-second countdown broadcast
type TimerTickPayload struct {
	TimeRemaining int `json:"timeRemaining"`
}

// ErrorPayload is sent privately to the originator of a rejected command
type ErrorPayload struct {
	Message string `json:"message"`
}
