package storage

import (
	"context"

	"github.com/ktanaka/coderelay-go/internal/model"
)

// Storage defines the persistence interface for room state.
// It stores rooms plus the playerID -> roomID membership index; keeping the
// two consistent across an operation is the room store's job, not the
// backend's.
type Storage interface {
	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	DeleteRoom(ctx context.Context, id model.RoomID) error
	RoomExists(ctx context.Context, id model.RoomID) (bool, error)
	RoomCount(ctx context.Context) (int, error)

	// Player membership index operations
	SetPlayerRoom(ctx context.Context, playerID model.PlayerID, roomID model.RoomID) error
	GetPlayerRoom(ctx context.Context, playerID model.PlayerID) (model.RoomID, error)
	DeletePlayerRoom(ctx context.Context, playerID model.PlayerID) error
}
