// Package factory wires the application together.
package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/ktanaka/coderelay-go/internal/catalog"
	"github.com/ktanaka/coderelay-go/internal/dependencies/clock"
	"github.com/ktanaka/coderelay-go/internal/dependencies/random"
	"github.com/ktanaka/coderelay-go/internal/gateway"
	"github.com/ktanaka/coderelay-go/internal/services/execution"
	"github.com/ktanaka/coderelay-go/internal/services/room"
	"github.com/ktanaka/coderelay-go/internal/services/turntimer"
	"github.com/ktanaka/coderelay-go/internal/storage"
	"github.com/ktanaka/coderelay-go/internal/storage/memory"
	redisstorage "github.com/ktanaka/coderelay-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Catalog     *catalog.Catalog
	RoomStore   *room.Store
	Timers      *turntimer.Manager
	Bridge      *execution.Bridge
	Hubs        *gateway.HubManager
	Broadcaster *gateway.Broadcaster
	Gateway     *gateway.Gateway
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// ProblemsPath optionally loads extra problems on top of the built-ins
	ProblemsPath string
	// TickInterval is the countdown granularity; defaults to one second
	TickInterval time.Duration
	// Evaluator grades submissions server-side; nil trusts client-reported results
	Evaluator execution.Evaluator
	// EvalTimeout bounds a single evaluation; zero uses the default
	EvalTimeout time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	cat := catalog.New(rnd, logger)
	if cfg.ProblemsPath != "" {
		if err := cat.LoadFromFile(cfg.ProblemsPath); err != nil {
			return nil, err
		}
	}

	interval := cfg.TickInterval
	if interval <= 0 {
		interval = time.Second
	}

	return newWithDependencies(store, cat, clk, rnd, interval, cfg.Evaluator, cfg.EvalTimeout, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	cat *catalog.Catalog,
	clk clock.Clock,
	rnd random.Random,
	tickInterval time.Duration,
	evaluator execution.Evaluator,
	evalTimeout time.Duration,
	logger *slog.Logger,
) *App {
	roomStore := room.NewStore(store, cat, clk, rnd, logger)
	hubs := gateway.NewHubManager(logger)
	broadcaster := gateway.NewBroadcaster(hubs, logger)
	timers := turntimer.NewManager(roomStore, broadcaster, tickInterval, logger)
	bridge := execution.NewBridge(evaluator, evalTimeout, logger)
	gw := gateway.New(roomStore, timers, bridge, hubs, broadcaster, logger)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		Catalog:     cat,
		RoomStore:   roomStore,
		Timers:      timers,
		Bridge:      bridge,
		Hubs:        hubs,
		Broadcaster: broadcaster,
		Gateway:     gw,
	}
}

// Close releases background resources: running timers and room hubs
func (a *App) Close() {
	a.Timers.StopAll()
	a.Hubs.CloseAll()
}
