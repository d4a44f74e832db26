// Package room implements the authoritative store for room and player
// state. All mutations go through Store methods, which serialize on a
// single mutex so check-then-act sequences (lookup + create, membership
// check + append) are atomic.
package room

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ktanaka/coderelay-go/internal/catalog"
	"github.com/ktanaka/coderelay-go/internal/dependencies/clock"
	"github.com/ktanaka/coderelay-go/internal/dependencies/random"
	"github.com/ktanaka/coderelay-go/internal/model"
	"github.com/ktanaka/coderelay-go/internal/storage"
)

// Store is the sole authority over Room/Player state
type Store struct {
	mu      sync.Mutex
	storage storage.Storage
	catalog *catalog.Catalog
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewStore creates a new room store
func NewStore(
	storage storage.Storage,
	catalog *catalog.Catalog,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Store {
	return &Store{
		storage: storage,
		catalog: catalog,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "room-store")),
	}
}

// JoinResult reports the outcome of AddPlayer
type JoinResult struct {
	Room *model.Room
	// Activated is true if this join started the game (first player)
	Activated bool
	// Rejoined is true if the player was already a member of this room
	Rejoined bool
}

// RemoveResult reports the outcome of RemovePlayer
type RemoveResult struct {
	Room   *model.Room // nil when the room was deleted
	RoomID model.RoomID
	// RoomDeleted is true if this removal emptied the room
	RoomDeleted bool
	// TurnTransferred is true if the current-turn holder changed
	TurnTransferred bool
}

// GetRoom retrieves a room by id
func (s *Store) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.GetRoom(ctx, id)
}

// CreateRoom creates a new room with a randomly selected problem.
// Fails with ErrRoomExists if the id is already taken.
func (s *Store) CreateRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.storage.RoomExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrRoomExists
	}

	return s.createRoomLocked(ctx, id)
}

// GetOrCreateRoom returns the room with the given id, creating it if
// absent. The lookup and create happen under one lock, so two
// back-to-back joins for the same new id cannot both create.
func (s *Store) GetOrCreateRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.storage.GetRoom(ctx, id)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, model.ErrRoomNotFound) {
		return nil, err
	}

	return s.createRoomLocked(ctx, id)
}

func (s *Store) createRoomLocked(ctx context.Context, id model.RoomID) (*model.Room, error) {
	problem, err := s.catalog.Pick()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	room := &model.Room{
		ID:                 id,
		Players:            []model.Player{},
		CurrentPlayerIndex: 0,
		Code:               problem.InitialCode,
		IsGameActive:       false,
		Problem:            problem,
		TurnLog:            []model.TurnLogEntry{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("room created",
		slog.String("room_id", string(id)),
		slog.String("problem_id", string(problem.ID)))
	return room, nil
}

// AddPlayer adds a player to a room. Joining a room the player is already
// in is idempotent; joining while a member elsewhere fails.
func (s *Store) AddPlayer(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, name string) (*JoinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.storage.GetPlayerRoom(ctx, playerID); err == nil {
		if existing == roomID {
			return &JoinResult{Room: room, Rejoined: true}, nil
		}
		return nil, model.ErrAlreadyInAnotherRoom
	}

	if room.IsFull() {
		return nil, model.ErrRoomFull
	}

	now := s.clock.Now()
	room.Players = append(room.Players, model.Player{
		ID:            playerID,
		Name:          name,
		TurnOrder:     len(room.Players),
		IsCurrentTurn: len(room.Players) == 0,
		JoinedAt:      now,
	})

	if err := s.storage.SetPlayerRoom(ctx, playerID, roomID); err != nil {
		return nil, err
	}

	activated := false
	if len(room.Players) == 1 {
		room.IsGameActive = true
		room.StartTime = &now
		activated = true
	}

	room.TurnLog = append(room.TurnLog, model.TurnLogEntry{
		PlayerID:   playerID,
		PlayerName: name,
		Action:     model.ActionJoined,
		Timestamp:  now,
	})
	room.UpdatedAt = now

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("player joined room",
		slog.String("room_id", string(roomID)),
		slog.String("player_id", string(playerID)),
		slog.Int("player_count", len(room.Players)))

	return &JoinResult{Room: room, Activated: activated}, nil
}

// RemovePlayer removes a player from whichever room they are in, located
// via the membership index. Emptying a room deletes it. If the removed
// player held the current turn, the player now occupying the vacated
// index (modulo the shrunk list) inherits it.
func (s *Store) RemovePlayer(ctx context.Context, playerID model.PlayerID) (*RemoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roomID, err := s.storage.GetPlayerRoom(ctx, playerID)
	if err != nil {
		return nil, err
	}

	room, err := s.storage.GetRoom(ctx, roomID)
	if err != nil {
		// Stale index entry for a vanished room; clean it up
		_ = s.storage.DeletePlayerRoom(ctx, playerID)
		return nil, model.ErrPlayerNotFound
	}

	idx := -1
	for i := range room.Players {
		if room.Players[i].ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		_ = s.storage.DeletePlayerRoom(ctx, playerID)
		return nil, model.ErrPlayerNotFound
	}

	prevHolder := room.CurrentPlayer()
	var prevHolderID model.PlayerID
	if prevHolder != nil {
		prevHolderID = prevHolder.ID
	}
	removedName := room.Players[idx].Name

	room.Players = append(room.Players[:idx], room.Players[idx+1:]...)
	if err := s.storage.DeletePlayerRoom(ctx, playerID); err != nil {
		return nil, err
	}

	if len(room.Players) == 0 {
		if err := s.storage.DeleteRoom(ctx, roomID); err != nil {
			return nil, err
		}
		s.logger.Info("room deleted",
			slog.String("room_id", string(roomID)),
			slog.String("last_player", string(playerID)))
		return &RemoveResult{RoomID: roomID, RoomDeleted: true}, nil
	}

	// Re-clamp the index, then re-derive every flag from it so there is
	// never more than one holder while the game runs, and none once it
	// is over. Whoever now occupies the index gets the turn.
	room.CurrentPlayerIndex = room.CurrentPlayerIndex % len(room.Players)
	transferred := false
	for i := range room.Players {
		room.Players[i].IsCurrentTurn = room.IsGameActive && i == room.CurrentPlayerIndex
	}
	if room.IsGameActive {
		transferred = room.Players[room.CurrentPlayerIndex].ID != prevHolderID
	}

	now := s.clock.Now()
	room.TurnLog = append(room.TurnLog, model.TurnLogEntry{
		PlayerID:   playerID,
		PlayerName: removedName,
		Action:     model.ActionLeft,
		Timestamp:  now,
	})
	room.UpdatedAt = now

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("player left room",
		slog.String("room_id", string(roomID)),
		slog.String("player_id", string(playerID)),
		slog.Int("player_count", len(room.Players)),
		slog.Bool("turn_transferred", transferred))

	return &RemoveResult{Room: room, RoomID: roomID, TurnTransferred: transferred}, nil
}

// AdvanceTurn hands the turn to the next player in rotation. The cause is
// recorded in the turn log (explicit completion vs. countdown expiry).
func (s *Store) AdvanceTurn(ctx context.Context, roomID model.RoomID, cause model.TurnAction) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsGameActive {
		return nil, model.ErrRoomNotActive
	}
	if len(room.Players) == 0 {
		return room, nil
	}

	now := s.clock.Now()
	outgoing := &room.Players[room.CurrentPlayerIndex]
	outgoing.IsCurrentTurn = false
	room.TurnLog = append(room.TurnLog, model.TurnLogEntry{
		PlayerID:   outgoing.ID,
		PlayerName: outgoing.Name,
		Action:     cause,
		Timestamp:  now,
		Code:       room.Code,
	})

	room.CurrentPlayerIndex = (room.CurrentPlayerIndex + 1) % len(room.Players)
	room.Players[room.CurrentPlayerIndex].IsCurrentTurn = true
	room.UpdatedAt = now

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// SetCode replaces the shared code buffer. The store does not check whose
// turn it is; that authorization belongs to the gateway.
func (s *Store) SetCode(ctx context.Context, roomID model.RoomID, code string) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	room.Code = code
	room.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// EndGame marks the game over and computes the final result. The room is
// kept (players may still be connected) but stops accepting turn
// operations.
func (s *Store) EndGame(ctx context.Context, roomID model.RoomID, finalCode string, isSuccess bool, testResults []model.TestResult) (*model.GameResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	room.IsGameActive = false
	room.EndTime = &now
	room.Code = finalCode

	totalTime := 0
	if room.StartTime != nil {
		totalTime = int(now.Sub(*room.StartTime).Seconds())
	}

	if current := room.CurrentPlayer(); current != nil {
		room.TurnLog = append(room.TurnLog, model.TurnLogEntry{
			PlayerID:   current.ID,
			PlayerName: current.Name,
			Action:     model.ActionCodeSubmitted,
			Timestamp:  now,
			Code:       finalCode,
		})
	}
	// Nobody holds the turn once the game is over.
	for i := range room.Players {
		room.Players[i].IsCurrentTurn = false
	}
	room.UpdatedAt = now

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("game ended",
		slog.String("room_id", string(roomID)),
		slog.Bool("success", isSuccess),
		slog.Int("total_time_seconds", totalTime))

	turnLog := make([]model.TurnLogEntry, len(room.TurnLog))
	copy(turnLog, room.TurnLog)

	return &model.GameResult{
		IsSuccess:        isSuccess,
		TotalTimeSeconds: totalTime,
		TurnLog:          turnLog,
		FinalCode:        finalCode,
		TestResults:      testResults,
	}, nil
}

// RoomCount returns the number of live rooms
func (s *Store) RoomCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.RoomCount(ctx)
}

// GenerateRoomID produces a fresh 6-character room code
func (s *Store) GenerateRoomID() model.RoomID {
	return model.RoomID(s.random.String(model.RoomIDLength, model.RoomIDAlphabet))
}

// Interface for dependency injection
type StoreInterface interface {
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	CreateRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	GetOrCreateRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	AddPlayer(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, name string) (*JoinResult, error)
	RemovePlayer(ctx context.Context, playerID model.PlayerID) (*RemoveResult, error)
	AdvanceTurn(ctx context.Context, roomID model.RoomID, cause model.TurnAction) (*model.Room, error)
	SetCode(ctx context.Context, roomID model.RoomID, code string) (*model.Room, error)
	EndGame(ctx context.Context, roomID model.RoomID, finalCode string, isSuccess bool, testResults []model.TestResult) (*model.GameResult, error)
	RoomCount(ctx context.Context) (int, error)
}

var _ StoreInterface = (*Store)(nil)
