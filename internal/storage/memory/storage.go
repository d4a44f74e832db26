package memory

import (
	"context"
	"sync"

	"github.com/ktanaka/coderelay-go/internal/model"
	"github.com/ktanaka/coderelay-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	rooms       map[model.RoomID]*model.Room
	playerRooms map[model.PlayerID]model.RoomID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms:       make(map[model.RoomID]*model.Room),
		playerRooms: make(map[model.PlayerID]model.RoomID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// cloneRoom detaches a room from its caller. Rooms are cloned on both
// save and read so a snapshot handed out earlier is never mutated by a
// later write, matching the isolation the redis backend gets from its
// JSON round-trip.
func cloneRoom(r *model.Room) *model.Room {
	c := *r
	c.Players = append([]model.Player(nil), r.Players...)
	c.TurnLog = append([]model.TurnLogEntry(nil), r.TurnLog...)
	if r.StartTime != nil {
		t := *r.StartTime
		c.StartTime = &t
	}
	if r.EndTime != nil {
		t := *r.EndTime
		c.EndTime = &t
	}
	return &c
}

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = cloneRoom(room)
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return cloneRoom(room), nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
	return nil
}

func (s *Storage) RoomExists(ctx context.Context, id model.RoomID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[id]
	return ok, nil
}

func (s *Storage) RoomCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms), nil
}

// Player membership index operations

func (s *Storage) SetPlayerRoom(ctx context.Context, playerID model.PlayerID, roomID model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerRooms[playerID] = roomID
	return nil
}

func (s *Storage) GetPlayerRoom(ctx context.Context, playerID model.PlayerID) (model.RoomID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roomID, ok := s.playerRooms[playerID]
	if !ok {
		return "", model.ErrPlayerNotFound
	}
	return roomID, nil
}

func (s *Storage) DeletePlayerRoom(ctx context.Context, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.playerRooms, playerID)
	return nil
}
