package factory

import (
	"io"
	"log/slog"

	"github.com/mcoot/scoreboard/internal/dependencies/clock"
	"github.com/mcoot/scoreboard/internal/dependencies/random"
	"github.com/mcoot/scoreboard/internal/services/scoreboard"
	"github.com/mcoot/scoreboard/internal/storage"
	"github.com/mcoot/scoreboard/internal/storage/memory"
	"github.com/mcoot/scoreboard/internal/web/sse"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	ScoreboardController *scoreboard.Controller
	HubManager           *sse.HubManager
	Broadcaster          *sse.Broadcaster

	Logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// DefaultThreshold is the win threshold for new boards (optional)
	// If zero, model.DefaultWinThreshold is used
	DefaultThreshold int
}

// New creates a new application with all dependencies wired
func New(cfg Config) *App {
	return newWithDependencies(memory.New(), clock.New(), random.New(), cfg)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	controller := scoreboard.NewController(store, clk, rnd, logger, scoreboard.Config{
		DefaultThreshold: cfg.DefaultThreshold,
	})
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	controller.SetNotifier(broadcaster)

	return &App{
		Storage:              store,
		Clock:                clk,
		Random:               rnd,
		ScoreboardController: controller,
		HubManager:           hubManager,
		Broadcaster:          broadcaster,
		Logger:               logger,
	}
}

// Close releases long-running resources such as SSE hubs
func (a *App) Close() {
	a.HubManager.Close()
}
