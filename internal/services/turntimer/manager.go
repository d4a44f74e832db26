// Package turntimer runs the per-room turn countdown. Each active room
// gets one goroutine ticking once per interval; when the countdown hits
// zero the manager forces a turn advance and restarts the clock.
package turntimer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ktanaka/coderelay-go/internal/model"
	"github.com/ktanaka/coderelay-go/internal/services/room"
)

// advanceTimeout bounds the storage round-trip on a forced advance
const advanceTimeout = 5 * time.Second

// Sink receives timer-driven events for fanout to connected clients
type Sink interface {
	// RoomTick reports the seconds remaining in the current turn
	RoomTick(roomID model.RoomID, remaining int)
	// RoomTurnAdvanced reports a turn forced over by countdown expiry
	RoomTurnAdvanced(room *model.Room, remaining int)
}

// Manager owns at most one countdown per room
type Manager struct {
	mu       sync.Mutex
	handles  map[model.RoomID]*handle
	interval time.Duration
	store    room.StoreInterface
	sink     Sink
	logger   *slog.Logger
}

type handle struct {
	roomID    model.RoomID
	limit     int
	mu        sync.Mutex
	remaining int
	done      chan struct{}
	stopOnce  sync.Once
}

func (h *handle) stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// NewManager creates a timer manager. The interval is one second in
// production; tests shrink it.
func NewManager(store room.StoreInterface, sink Sink, interval time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		handles:  make(map[model.RoomID]*handle),
		interval: interval,
		store:    store,
		sink:     sink,
		logger:   logger.With(slog.String("component", "turn-timer")),
	}
}

// Start begins a countdown of limitSeconds for the room. Starting a room
// that already has a timer restarts its countdown in place.
func (m *Manager) Start(roomID model.RoomID, limitSeconds int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.handles[roomID]; ok {
		h.reset()
		return
	}

	h := &handle{
		roomID:    roomID,
		limit:     limitSeconds,
		remaining: limitSeconds,
		done:      make(chan struct{}),
	}
	m.handles[roomID] = h
	go m.run(h)

	m.logger.Info("timer started",
		slog.String("room_id", string(roomID)),
		slog.Int("limit_seconds", limitSeconds))
}

// Reset restarts the room's countdown from its full limit. No-op if the
// room has no timer.
func (m *Manager) Reset(roomID model.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.handles[roomID]; ok {
		h.reset()
	}
}

// Stop cancels the room's countdown
func (m *Manager) Stop(roomID model.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.handles[roomID]; ok {
		h.stop()
		delete(m.handles, roomID)
		m.logger.Info("timer stopped", slog.String("room_id", string(roomID)))
	}
}

// StopAll cancels every countdown; used on shutdown
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, h := range m.handles {
		h.stop()
		delete(m.handles, id)
	}
}

// Running reports whether the room has an active countdown
func (m *Manager) Running(roomID model.RoomID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.handles[roomID]
	return ok
}

func (m *Manager) run(h *handle) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			if !m.tick(h) {
				return
			}
		}
	}
}

// tick drives one countdown step: decrement, broadcast the remaining
// time, and on expiry force the turn over and restart. Returns false when
// the timer should die (the room is gone or the game ended).
func (m *Manager) tick(h *handle) bool {
	h.mu.Lock()
	h.remaining--
	remaining := h.remaining
	h.mu.Unlock()

	m.sink.RoomTick(h.roomID, remaining)

	if remaining > 0 {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), advanceTimeout)
	defer cancel()

	r, err := m.store.AdvanceTurn(ctx, h.roomID, model.ActionTurnExpired)
	if err != nil {
		m.logger.Info("timer retired",
			slog.String("room_id", string(h.roomID)),
			slog.String("reason", err.Error()))
		m.remove(h)
		return false
	}

	h.reset()
	m.sink.RoomTurnAdvanced(r, h.limit)
	return true
}

func (m *Manager) remove(h *handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.handles[h.roomID]; ok && cur == h {
		cur.stop()
		delete(m.handles, h.roomID)
	}
}

func (h *handle) reset() {
	h.mu.Lock()
	h.remaining = h.limit
	h.mu.Unlock()
}
