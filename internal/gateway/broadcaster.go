package gateway

import (
	"encoding/json"
	"log/slog"

	"github.com/ktanaka/coderelay-go/internal/api/response"
	"github.com/ktanaka/coderelay-go/internal/model"
)

// Broadcaster turns domain events into websocket broadcasts. It also
// implements turntimer.Sink so the countdown can reach clients without
// the timer knowing about hubs.
type Broadcaster struct {
	hubs   *HubManager
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubs *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubs:   hubs,
		logger: logger.With(slog.String("component", "broadcaster")),
	}
}

func (b *Broadcaster) broadcastEvent(roomID model.RoomID, event string, data any, exclude *Client) {
	hub := b.hubs.GetHub(roomID)
	if hub == nil {
		return
	}
	payload, err := json.Marshal(model.ServerEvent{Event: event, Data: data})
	if err != nil {
		b.logger.Error("broadcast marshal failed",
			slog.String("room", string(roomID)),
			slog.String("event", event),
			slog.Any("error", err))
		return
	}
	hub.Broadcast(payload, exclude)
}

// RoomState broadcasts a full room snapshot to every member. Membership
// changes always go out as whole snapshots, never deltas.
func (b *Broadcaster) RoomState(room *model.Room) {
	b.broadcastEvent(room.ID, model.EventUpdateRoom, response.RoomFromModel(room), nil)
}

// CodeUpdated tells everyone except the author that the buffer changed
func (b *Broadcaster) CodeUpdated(roomID model.RoomID, code string, author *Client) {
	b.broadcastEvent(roomID, model.EventCodeUpdated, model.CodeUpdatedPayload{
		Code:     code,
		PlayerID: author.id,
	}, author)
}

// TurnChanged announces the new turn holder and the fresh countdown
func (b *Broadcaster) TurnChanged(room *model.Room, remaining int) {
	current := room.CurrentPlayer()
	if current == nil {
		return
	}
	player := *current
	b.broadcastEvent(room.ID, model.EventTurnChanged, model.TurnChangedPayload{
		CurrentPlayer: &player,
		TimeRemaining: remaining,
	}, nil)
}

// GameResult broadcasts the terminal outcome to the whole room
func (b *Broadcaster) GameResult(roomID model.RoomID, result *model.GameResult) {
	b.broadcastEvent(roomID, model.EventGameResult, result, nil)
}

// RoomTick implements turntimer.Sink
func (b *Broadcaster) RoomTick(roomID model.RoomID, remaining int) {
	b.broadcastEvent(roomID, model.EventTimerTick, model.TimerTickPayload{TimeRemaining: remaining}, nil)
}

// RoomTurnAdvanced implements turntimer.Sink
func (b *Broadcaster) RoomTurnAdvanced(room *model.Room, remaining int) {
	b.TurnChanged(room, remaining)
}
