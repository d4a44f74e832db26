package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ktanaka/coderelay-go/internal/model"
	"github.com/ktanaka/coderelay-go/internal/storage/memory"
)

type MemoryStorageTestSuite struct {
	suite.Suite
	ctx     context.Context
	storage *memory.Storage
}

func TestMemoryStorageTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryStorageTestSuite))
}

func (s *MemoryStorageTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.storage = memory.New()
}

func (s *MemoryStorageTestSuite) testRoom(id model.RoomID) *model.Room {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	return &model.Room{
		ID:        id,
		Players:   []model.Player{{ID: "p1", Name: "alice", IsCurrentTurn: true, JoinedAt: now}},
		Code:      "initial",
		Problem:   model.Problem{ID: "reverse-string", MaxPlayers: 5, TimeLimitSeconds: 60},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *MemoryStorageTestSuite) TestSaveAndGetRoom() {
	room := s.testRoom("ABC123")
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	got, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Assert().Equal(room.ID, got.ID)
	s.Assert().Equal(room.Code, got.Code)
	s.Require().Len(got.Players, 1)
	s.Assert().Equal(model.PlayerID("p1"), got.Players[0].ID)
}

func (s *MemoryStorageTestSuite) TestSaveRoomDetachesFromCaller() {
	room := s.testRoom("ABC123")
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	// mutations after save must not bleed into the stored room
	room.Code = "scribbled"
	room.Players[0].Name = "mallory"
	room.TurnLog = append(room.TurnLog, model.TurnLogEntry{PlayerID: "p1", Action: model.ActionLeft})

	got, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Assert().Equal("initial", got.Code)
	s.Assert().Equal("alice", got.Players[0].Name)
	s.Assert().Empty(got.TurnLog)
}

func (s *MemoryStorageTestSuite) TestGetRoomReturnsIndependentCopy() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.testRoom("ABC123")))

	first, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	first.Code = "scribbled"
	first.Players[0].IsCurrentTurn = false

	second, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Assert().Equal("initial", second.Code)
	s.Assert().True(second.Players[0].IsCurrentTurn)
}

func (s *MemoryStorageTestSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "NOSUCH")
	s.Assert().ErrorIs(err, model.ErrRoomNotFound)
}

func (s *MemoryStorageTestSuite) TestDeleteRoom() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.testRoom("ABC123")))
	s.Require().NoError(s.storage.DeleteRoom(s.ctx, "ABC123"))

	_, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Assert().ErrorIs(err, model.ErrRoomNotFound)

	// deleting a missing room is not an error
	s.Assert().NoError(s.storage.DeleteRoom(s.ctx, "ABC123"))
}

func (s *MemoryStorageTestSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Assert().False(exists)

	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.testRoom("ABC123")))

	exists, err = s.storage.RoomExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Assert().True(exists)
}

func (s *MemoryStorageTestSuite) TestRoomCount() {
	count, err := s.storage.RoomCount(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(0, count)

	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.testRoom("ABC123")))
	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.testRoom("XYZ789")))

	count, err = s.storage.RoomCount(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(2, count)
}

func (s *MemoryStorageTestSuite) TestPlayerRoomIndex() {
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
