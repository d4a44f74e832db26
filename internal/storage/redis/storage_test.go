package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/ktanaka/coderelay-go/internal/model"
	redisstorage "github.com/ktanaka/coderelay-go/internal/storage/redis"
)

type RedisStorageTestSuite struct {
	suite.Suite
	ctx     context.Context
	mini    *miniredis.Miniredis
	storage *redisstorage.Storage
}

func TestRedisStorageTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStorageTestSuite))
}

func (s *RedisStorageTestSuite) SetupTest() {
	s.ctx = context.Background()

	mini, err := miniredis.Run()
	s.Require().NoError(err)
	s.mini = mini

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	s.storage = redisstorage.NewWithClient(client, redisstorage.DefaultConfig())
}

func (s *RedisStorageTestSuite) TearDownTest() {
	_ = s.storage.Close()
	s.mini.Close()
}

func (s *RedisStorageTestSuite) testRoom(id model.RoomID) *model.Room {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	return &model.Room{
		ID:           id,
		Players:      []model.Player{{ID: "p1", Name: "alice", IsCurrentTurn: true, JoinedAt: now}},
		Code:         "initial",
		IsGameActive: true,
		Problem: model.Problem{
			ID:               "reverse-string",
			MaxPlayers:       5,
			TimeLimitSeconds: 60,
			HiddenTestCases:  []model.TestCase{{Input: "secret", ExpectedOutput: "terces"}},
		},
		StartTime: &now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *RedisStorageTestSuite) TestSaveAndGetRoomRoundTrip() {
	room := s.testRoom("ABC123")
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	got, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)

	s.Assert().Equal(room.ID, got.ID)
	s.Assert().Equal(room.Code, got.Code)
	s.Assert().True(got.IsGameActive)
	s.Require().NotNil(got.StartTime)
	s.Assert().True(room.StartTime.Equal(*got.StartTime))
	s.Require().Len(got.Players, 1)
	s.Assert().True(got.Players[0].IsCurrentTurn)
	// hidden test cases survive persistence; only the API layer strips them
	s.Require().Len(got.Problem.HiddenTestCases, 1)
	s.Assert().Equal("secret", got.Problem.HiddenTestCases[0].Input)
}

func (s *RedisStorageTestSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "NOSUCH")
	s.Assert().ErrorIs(err, model.ErrRoomNotFound)
}

func (s *RedisStorageTestSuite) TestDeleteRoom() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.testRoom("ABC123")))
	s.Require().NoError(s.storage.DeleteRoom(s.ctx, "ABC123"))

	_, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Assert().ErrorIs(err, model.ErrRoomNotFound)
}

func (s *RedisStorageTestSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Assert().False(exists)

	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.testRoom("ABC123")))

	exists, err = s.storage.RoomExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Assert().True(exists)
}

func (s *RedisStorageTestSuite) TestRoomCount() {
	count, err := s.storage.RoomCount(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(0, count)

	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.testRoom("ABC123")))
	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.testRoom("XYZ789")))
	// membership keys must not inflate the room count
	s.Require().NoError(s.storage.SetPlayerRoom(s.ctx, "p1", "ABC123"))

	count, err = s.storage.RoomCount(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(2, count)
}

func (s *RedisStorageTestSuite) TestRoomTTLRefreshedOnSave() {
	cfg := redisstorage.DefaultConfig()
	room := s.testRoom("ABC123")
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	s.mini.FastForward(cfg.RoomTTL / 2)
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))
	s.mini.FastForward(cfg.RoomTTL / 2)

	_, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Assert().NoError(err)
}

func (s *RedisStorageTestSuite) TestRoomExpires() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.testRoom("ABC123")))

	s.mini.FastForward(redisstorage.DefaultConfig().RoomTTL + time.Minute)

	_, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Assert().ErrorIs(err, model.ErrRoomNotFound)
}

func (s *RedisStorageTestSuite) TestPlayerRoomIndex() {
	_, err := s.storage.GetPlayerRoom(s.ctx, "p1")
	s.Assert().ErrorIs(err, model.ErrPlayerNotFound)

	s.Require().NoError(s.storage.SetPlayerRoom(s.ctx, "p1", "ABC123"))

	roomID, err := s.storage.GetPlayerRoom(s.ctx, "p1")
	s.Require().NoError(err)
	s.Assert().Equal(model.RoomID("ABC123"), roomID)

	s.Require().NoError(s.storage.DeletePlayerRoom(s.ctx, "p1"))

	_, err = s.storage.GetPlayerRoom(s.ctx, "p1")
	s.Assert().ErrorIs(err, model.ErrPlayerNotFound)
}
