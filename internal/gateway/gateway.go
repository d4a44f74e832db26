// Package gateway is the websocket session layer. It upgrades
// connections, assigns each one a server-side player identity, and
// translates the wire protocol into room store operations.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ktanaka/coderelay-go/internal/api/response"
	"github.com/ktanaka/coderelay-go/internal/model"
	"github.com/ktanaka/coderelay-go/internal/services/execution"
	"github.com/ktanaka/coderelay-go/internal/services/room"
	"github.com/ktanaka/coderelay-go/internal/services/turntimer"
)

// opTimeout bounds the storage round-trip behind a single client command
const opTimeout = 5 * time.Second

// Gateway handles websocket sessions and command dispatch
type Gateway struct {
	store       room.StoreInterface
	timers      *turntimer.Manager
	bridge      *execution.Bridge
	hubs        *HubManager
	broadcaster *Broadcaster
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

// New creates a gateway
func New(
	store room.StoreInterface,
	timers *turntimer.Manager,
	bridge *execution.Bridge,
	hubs *HubManager,
	broadcaster *Broadcaster,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		store:       store,
		timers:      timers,
		bridge:      bridge,
		hubs:        hubs,
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Browser clients connect from arbitrary origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "gateway")),
	}
}

// ServeWS upgrades an HTTP request to a websocket session
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := newClient(model.PlayerID(uuid.NewString()), conn)
	g.logger.Info("client connected",
		slog.String("player_id", string(client.id)),
		slog.String("remote_addr", r.RemoteAddr))

	go client.writePump()
	go client.readPump(g)
}

// dispatch routes one inbound frame to its handler
func (g *Gateway) dispatch(c *Client, raw []byte) {
	var evt model.ClientEvent
	if err := json.Unmarshal(raw, &evt); err != nil {
		c.sendError("invalid message")
		return
	}

	switch evt.Event {
	case model.EventJoinRoom:
		var p model.JoinRoomPayload
		if err := json.Unmarshal(evt.Data, &p); err != nil {
			c.sendError("invalid join-room payload")
			return
		}
		g.handleJoin(c, p)

	case model.EventLeaveRoom:
		g.handleLeave(c)

	case model.EventUpdateCode:
		var p model.UpdateCodePayload
		if err := json.Unmarshal(evt.Data, &p); err != nil {
			c.sendError("invalid update-code payload")
			return
		}
		g.handleUpdateCode(c, p)

	case model.EventTurnComplete:
		g.handleTurnComplete(c)

	case model.EventSubmitCode:
		var p model.SubmitCodePayload
		if err := json.Unmarshal(evt.Data, &p); err != nil {
			c.sendError("invalid submit-code payload")
			return
		}
		g.handleSubmit(c, p)

	default:
		c.sendError("unknown event: " + evt.Event)
	}
}

func (g *Gateway) handleJoin(c *Client, p model.JoinRoomPayload) {
	if roomID, _ := c.room(); roomID != "" {
		c.sendError("already in a room")
		return
	}
	if err := model.ValidatePlayerName(p.PlayerName); err != nil {
		c.sendError(errorMessage(err))
		return
	}
	if err := model.ValidateRoomID(p.RoomID); err != nil {
		c.sendError(errorMessage(err))
		return
	}

	ctx, cancel := g.opContext()
	defer cancel()

	if _, err := g.store.GetOrCreateRoom(ctx, p.RoomID); err != nil {
		c.sendError(errorMessage(err))
		return
	}
	res, err := g.store.AddPlayer(ctx, p.RoomID, c.id, p.PlayerName)
	if err != nil {
		c.sendError(errorMessage(err))
		return
	}

	hub := g.hubs.GetOrCreateHub(p.RoomID)
	c.setRoom(p.RoomID, hub)
	hub.Register(c)

	c.sendEvent(model.EventRoomJoined, response.RoomJoined{
		Room:     response.RoomFromModel(res.Room),
		PlayerID: string(c.id),
	})
	g.broadcaster.RoomState(res.Room)

	if res.Activated {
		g.timers.Start(p.RoomID, res.Room.Problem.TimeLimitSeconds)
	}
}

func (g *Gateway) handleLeave(c *Client) {
	if roomID, _ := c.room(); roomID == "" {
		c.sendError("not in a room")
		return
	}
	g.leave(c)
}

// leave removes the client from its room and fans out the consequences.
// Used for both explicit leave-room and connection drop.
func (g *Gateway) leave(c *Client) {
	roomID, hub := c.room()
	if roomID == "" {
		return
	}

	ctx, cancel := g.opContext()
	defer cancel()

	res, err := g.store.RemovePlayer(ctx, c.id)
	if hub != nil {
		hub.Unregister(c)
	}
	c.clearRoom()
	if err != nil {
		g.logger.Warn("leave failed",
			slog.String("player_id", string(c.id)),
			slog.String("error", err.Error()))
		return
	}

	if res.RoomDeleted {
		g.timers.Stop(res.RoomID)
		g.hubs.RemoveHub(res.RoomID)
		return
	}

	g.broadcaster.RoomState(res.Room)
	if res.TurnTransferred {
		g.timers.Reset(res.RoomID)
		g.broadcaster.TurnChanged(res.Room, res.Room.Problem.TimeLimitSeconds)
	}
}

func (g *Gateway) handleUpdateCode(c *Client, p model.UpdateCodePayload) {
	roomID, err := g.authorizeTurn(c)
	if err != nil {
		c.sendError(errorMessage(err))
		return
	}

	ctx, cancel := g.opContext()
	defer cancel()

	if _, err := g.store.SetCode(ctx, roomID, p.Code); err != nil {
		c.sendError(errorMessage(err))
		return
	}
	g.broadcaster.CodeUpdated(roomID, p.Code, c)
}

func (g *Gateway) handleTurnComplete(c *Client) {
	roomID, err := g.authorizeTurn(c)
	if err != nil {
		c.sendError(errorMessage(err))
		return
	}

	ctx, cancel := g.opContext()
	defer cancel()

	r, err := g.store.AdvanceTurn(ctx, roomID, model.ActionTurnCompleted)
	if err != nil {
		c.sendError(errorMessage(err))
		return
	}
	g.timers.Reset(roomID)
	g.broadcaster.TurnChanged(r, r.Problem.TimeLimitSeconds)
}

func (g *Gateway) handleSubmit(c *Client, p model.SubmitCodePayload) {
	roomID, err := g.authorizeTurn(c)
	if err != nil {
		c.sendError(errorMessage(err))
		return
	}

	ctx, cancel := g.opContext()
	defer cancel()

	r, err := g.store.GetRoom(ctx, roomID)
	if err != nil {
		c.sendError(errorMessage(err))
		return
	}

	report, err := g.bridge.Grade(ctx, r.Problem, p.Code, execution.ReportedResult{
		IsSuccess: p.IsSuccess,
	})
	if err != nil {
		c.sendError(errorMessage(err))
		return
	}

	result, err := g.store.EndGame(ctx, roomID, p.Code, report.Passed, report.Results)
	if err != nil {
		c.sendError(errorMessage(err))
		return
	}

	g.timers.Stop(roomID)
	g.broadcaster.GameResult(roomID, result)

	if final, err := g.store.GetRoom(ctx, roomID); err == nil {
		g.broadcaster.RoomState(final)
	}
}

// authorizeTurn checks the client is in a room, the game is running, and
// the turn is theirs
func (g *Gateway) authorizeTurn(c *Client) (model.RoomID, error) {
	roomID, _ := c.room()
	if roomID == "" {
		return "", model.ErrPlayerNotFound
	}

	ctx, cancel := g.opContext()
	defer cancel()

	r, err := g.store.GetRoom(ctx, roomID)
	if err != nil {
		return "", err
	}
	if !r.IsGameActive {
		return "", model.ErrRoomNotActive
	}
	player := r.GetPlayer(c.id)
	if player == nil {
		return "", model.ErrPlayerNotFound
	}
	if !player.IsCurrentTurn {
		return "", model.ErrNotPlayerTurn
	}
	return roomID, nil
}

// disconnect runs when a client's read pump exits for any reason
func (g *Gateway) disconnect(c *Client) {
	g.leave(c)
	c.shutdown()
	g.logger.Info("client disconnected", slog.String("player_id", string(c.id)))
}

func (g *Gateway) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// errorMessage maps domain errors to the messages clients see
func errorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return "room not found"
	case errors.Is(err, model.ErrRoomFull):
		return "room is full"
	case errors.Is(err, model.ErrRoomNotActive):
		return "game is not active"
	case errors.Is(err, model.ErrPlayerNotFound):
		return "player is not in a room"
	case errors.Is(err, model.ErrAlreadyInAnotherRoom):
		return "already in another room"
	case errors.Is(err, model.ErrNotPlayerTurn):
		return "not your turn"
	case errors.Is(err, model.ErrInvalidPlayerName):
		return "invalid player name"
	case errors.Is(err, model.ErrInvalidRoomID):
		return "invalid room id"
	case errors.Is(err, model.ErrCatalogEmpty):
		return "no problems available"
	case errors.Is(err, model.ErrExecutionFailure):
		return "code evaluation failed"
	default:
		return "internal error"
	}
}
