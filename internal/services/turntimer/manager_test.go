package turntimer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ktanaka/coderelay-go/internal/catalog"
	"github.com/ktanaka/coderelay-go/internal/dependencies/mocks"
	"github.com/ktanaka/coderelay-go/internal/model"
	"github.com/ktanaka/coderelay-go/internal/services/room"
	"github.com/ktanaka/coderelay-go/internal/storage/memory"
	"github.com/ktanaka/coderelay-go/internal/testutil"
)

// recordingSink captures emitted events for assertions
type recordingSink struct {
	mu       sync.Mutex
	ticks    []int
	advanced []model.PlayerID
}

func (s *recordingSink) RoomTick(roomID model.RoomID, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks = append(s.ticks, remaining)
}

func (s *recordingSink) RoomTurnAdvanced(r *model.Room, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanced = append(s.advanced, r.CurrentPlayer().ID)
}

func (s *recordingSink) tickCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ticks)
}

type ManagerTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *room.Store
	sink    *recordingSink
	manager *Manager
}

func TestManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) SetupTest() {
	s.ctx = context.Background()
	clk := &mocks.MockClock{CurrentTime: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)}
	rnd := &mocks.MockRandom{}
	s.store = room.NewStore(
		memory.New(),
		catalog.New(rnd, testutil.NopLogger()),
		clk,
		rnd,
		testutil.NopLogger(),
	)
	s.sink = &recordingSink{}
	s.manager = NewManager(s.store, s.sink, time.Second, testutil.NopLogger())
}

func (s *ManagerTestSuite) seedRoom(roomID model.RoomID, players ...model.PlayerID) {
	_, err := s.store.CreateRoom(s.ctx, roomID)
	s.Require().NoError(err)
	for _, p := range players {
		_, err := s.store.AddPlayer(s.ctx, roomID, p, "player-"+string(p))
		s.Require().NoError(err)
	}
}

// newHandle registers a countdown without spawning the ticker goroutine,
// so tests can step it by hand
func (s *ManagerTestSuite) newHandle(roomID model.RoomID, limit int) *handle {
	h := &handle{
		roomID:    roomID,
		limit:     limit,
		remaining: limit,
		done:      make(chan struct{}),
	}
	s.manager.mu.Lock()
	s.manager.handles[roomID] = h
	s.manager.mu.Unlock()
	return h
}

func (s *ManagerTestSuite) TestCountdownEmitsEveryRemainingValue() {
	s.seedRoom("ABC123", "p1", "p2")
	h := s.newHandle("ABC123", 3)

	s.Require().True(s.manager.tick(h))
	s.Require().True(s.manager.tick(h))
	s.Assert().Equal([]int{2, 1}, s.sink.ticks)
	s.Assert().Empty(s.sink.advanced)
}

func (s *ManagerTestSuite) TestExpiryForcesTurnOverAndRestarts() {
	s.seedRoom("ABC123", "p1", "p2")
	h := s.newHandle("ABC123", 3)

	for i := 0; i < 3; i++ {
		s.Require().True(s.manager.tick(h))
	}

	s.Assert().Equal([]int{2, 1, 0}, s.sink.ticks)
	s.Require().Equal([]model.PlayerID{"p2"}, s.sink.advanced)

	r, err := s.store.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Assert().Equal(model.PlayerID("p2"), r.CurrentPlayer().ID)
	last := r.TurnLog[len(r.TurnLog)-1]
	s.Assert().Equal(model.ActionTurnExpired, last.Action)

	// countdown restarted from the full limit
	h.mu.Lock()
	s.Assert().Equal(3, h.remaining)
	h.mu.Unlock()
}

func (s *ManagerTestSuite) TestExpiryWithSinglePlayerKeepsTicking() {
	s.seedRoom("ABC123", "p1")
	h := s.newHandle("ABC123", 2)

	s.Require().True(s.manager.tick(h))
	s.Require().True(s.manager.tick(h))

	s.Require().Equal([]model.PlayerID{"p1"}, s.sink.advanced)
	s.Assert().True(s.manager.Running("ABC123"))
}

func (s *ManagerTestSuite) TestTimerRetiresWhenRoomGone() {
	h := s.newHandle("NOSUCH", 1)

	s.Assert().False(s.manager.tick(h))
	s.Assert().False(s.manager.Running("NOSUCH"))
	s.Assert().Empty(s.sink.advanced)
}

func (s *ManagerTestSuite) TestTimerRetiresAfterGameEnds() {
	s.seedRoom("ABC123", "p1", "p2")
	_, err := s.store.EndGame(s.ctx, "ABC123", "done", true, nil)
	s.Require().NoError(err)

	h := s.newHandle("ABC123", 1)

	s.Assert().False(s.manager.tick(h))
	s.Assert().False(s.manager.Running("ABC123"))
}

func (s *ManagerTestSuite) TestStartIsIdempotentPerRoom() {
	s.seedRoom("ABC123", "p1", "p2")
	s.manager.Start("ABC123", 60)
	defer s.manager.StopAll()

	s.manager.mu.Lock()
	h := s.manager.handles["ABC123"]
	s.manager.mu.Unlock()
	h.mu.Lock()
	h.remaining = 10
	h.mu.Unlock()

	// second Start resets the countdown instead of stacking a goroutine
	s.manager.Start("ABC123", 60)

	s.manager.mu.Lock()
	s.Assert().Same(h, s.manager.handles["ABC123"])
	s.manager.mu.Unlock()
	h.mu.Lock()
	s.Assert().Equal(60, h.remaining)
	h.mu.Unlock()
}

func (s *ManagerTestSuite) TestResetRestoresFullLimit() {
	s.seedRoom("ABC123", "p1", "p2")
	h := s.newHandle("ABC123", 5)

	s.Require().True(s.manager.tick(h))
	s.Require().True(s.manager.tick(h))
	s.manager.Reset("ABC123")

	h.mu.Lock()
	s.Assert().Equal(5, h.remaining)
	h.mu.Unlock()
}

func (s *ManagerTestSuite) TestStop() {
	s.seedRoom("ABC123", "p1")
	s.manager.Start("ABC123", 60)

	s.manager.Stop("ABC123")
	s.Assert().False(s.manager.Running("ABC123"))

	// second stop is a no-op
	s.manager.Stop("ABC123")
}

func (s *ManagerTestSuite) TestRunLoopTicks() {
	s.seedRoom("ABC123", "p1", "p2")

	fast := NewManager(s.store, s.sink, 5*time.Millisecond, testutil.NopLogger())
	fast.Start("ABC123", 60)
	defer fast.StopAll()

	s.Require().Eventually(func() bool {
		return s.sink.tickCount() >= 3
	}, 2*time.Second, time.Millisecond)
}
