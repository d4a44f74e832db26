package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ktanaka/coderelay-go/internal/model"
	"github.com/ktanaka/coderelay-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, roomKey(room.ID), data, s.cfg.RoomTTL).Err()
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	return s.client.Del(ctx, roomKey(id)).Err()
}

func (s *Storage) RoomExists(ctx context.Context, id model.RoomID) (bool, error) {
	exists, err := s.client.Exists(ctx, roomKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) RoomCount(ctx context.Context) (int, error) {
	count := 0
	iter := s.client.Scan(ctx, 0, roomKeyPattern(), 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

// Player membership index operations

func (s *Storage) SetPlayerRoom(ctx context.Context, playerID model.PlayerID, roomID model.RoomID) error {
	return s.client.Set(ctx, playerRoomKey(playerID), string(roomID), s.cfg.MembershipTTL).Err()
}

func (s *Storage) GetPlayerRoom(ctx context.Context, playerID model.PlayerID) (model.RoomID, error) {
	roomID, err := s.client.Get(ctx, playerRoomKey(playerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrPlayerNotFound
		}
		return "", err
	}
	return model.RoomID(roomID), nil
}

func (s *Storage) DeletePlayerRoom(ctx context.Context, playerID model.PlayerID) error {
	return s.client.Del(ctx, playerRoomKey(playerID)).Err()
}
