package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ktanaka/coderelay-go/internal/model"
	"github.com/ktanaka/coderelay-go/internal/services/execution"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.app.Close()
}

// Test: complete relay flow from first join to submission
func (s *IntegrationSuite) TestCompleteRelayFlow() {
	// Step 1: first player joins a fresh room; the game starts
	_, err := s.app.RoomStore.GetOrCreateRoom(s.ctx, "ABC123")
	s.Require().NoError(err)

	res, err := s.app.RoomStore.AddPlayer(s.ctx, "ABC123", "p1", "alice")
	s.Require().NoError(err)
	s.True(res.Activated)
	s.True(res.Room.IsGameActive)

	// Step 2: two more players join
	_, err = s.app.RoomStore.AddPlayer(s.ctx, "ABC123", "p2", "bob")
	s.Require().NoError(err)
	res, err = s.app.RoomStore.AddPlayer(s.ctx, "ABC123", "p3", "carol")
	s.Require().NoError(err)
	s.Len(res.Room.Players, 3)

	// Step 3: the current player edits then relays the turn
	_, err = s.app.RoomStore.SetCode(s.ctx, "ABC123", "draft by alice")
	s.Require().NoError(err)
	r, err := s.app.RoomStore.AdvanceTurn(s.ctx, "ABC123", model.ActionTurnCompleted)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p2"), r.CurrentPlayer().ID)

	// Step 4: bob drops out mid-turn; carol inherits
	remove, err := s.app.RoomStore.RemovePlayer(s.ctx, "p2")
	s.Require().NoError(err)
	s.True(remove.TurnTransferred)
	s.Equal(model.PlayerID("p3"), remove.Room.CurrentPlayer().ID)

	// Step 5: carol submits after two minutes of play
	s.app.MockClock.Advance(2 * time.Minute)
	report, err := s.app.Bridge.Grade(s.ctx, r.Problem, "final code", execution.ReportedResult{IsSuccess: true})
	s.Require().NoError(err)
	s.True(report.Passed)

	result, err := s.app.RoomStore.EndGame(s.ctx, "ABC123", "final code", report.Passed, report.Results)
	s.Require().NoError(err)
	s.True(result.IsSuccess)
	s.Equal(120, result.TotalTimeSeconds)

	// Step 6: the room survives game end until everyone leaves
	_, err = s.app.RoomStore.RemovePlayer(s.ctx, "p1")
	s.Require().NoError(err)
	last, err := s.app.RoomStore.RemovePlayer(s.ctx, "p3")
	s.Require().NoError(err)
	s.True(last.RoomDeleted)

	_, err = s.app.RoomStore.GetRoom(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *IntegrationSuite) TestTimerDrivesRotation() {
	_, err := s.app.RoomStore.GetOrCreateRoom(s.ctx, "XYZ789")
	s.Require().NoError(err)
	_, err = s.app.RoomStore.AddPlayer(s.ctx, "XYZ789", "p1", "alice")
	s.Require().NoError(err)
	_, err = s.app.RoomStore.AddPlayer(s.ctx, "XYZ789", "p2", "bob")
	s.Require().NoError(err)

	s.app.Timers.Start("XYZ789", 60)
	defer s.app.Timers.StopAll()
	s.True(s.app.Timers.Running("XYZ789"))

	s.app.Timers.Stop("XYZ789")
	s.False(s.app.Timers.Running("XYZ789"))
}
