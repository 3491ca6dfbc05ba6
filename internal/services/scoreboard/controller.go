package scoreboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/scoreboard/internal/dependencies/clock"
	"github.com/mcoot/scoreboard/internal/dependencies/random"
	"github.com/mcoot/scoreboard/internal/model"
	"github.com/mcoot/scoreboard/internal/storage"
)

const (
	// BoardCodeLength is the length of generated board codes
	BoardCodeLength = 6
	// BoardCodeAlphabet is the characters used in board codes (avoid confusing chars)
	BoardCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// maxCodeAttempts bounds the search for an unused board code
	maxCodeAttempts = 20
)

// ErrNoBoardCode is returned when no unused board code could be generated
var ErrNoBoardCode = errors.New("could not generate an unused board code")

// Notifier receives every event produced by a successful mutation. Notify is
// called with the controller lock held and must not block or call back into
// the controller.
type Notifier interface {
	Notify(ctx context.Context, event model.Event, board *model.Scoreboard)
}

// Config holds settings for hosted scoreboards
type Config struct {
	// DefaultThreshold is used when a board is created without one.
	// Zero means model.DefaultWinThreshold.
	DefaultThreshold int
}

// Controller hosts scoreboards by code. Every mutation is a
// load, apply, save sequence held under one lock, so concurrent requests
// never interleave on a board.
type Controller struct {
	storage  storage.Storage
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
	notifier Notifier
	cfg      Config

	mu sync.Mutex
}

// NewController creates a new scoreboard Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	cfg Config,
) *Controller {
	if cfg.DefaultThreshold <= 0 {
		cfg.DefaultThreshold = model.DefaultWinThreshold
	}
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "scoreboard")),
		cfg:     cfg,
	}
}

// SetNotifier sets the receiver for board events. A nil notifier disables publishing.
func (c *Controller) SetNotifier(n Notifier) {
	c.notifier = n
}

// CreateBoard creates a new empty board. A threshold of zero selects the configured default.
func (c *Controller) CreateBoard(ctx context.Context, threshold int) (*model.Scoreboard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	code, err := c.newBoardCode(ctx)
	if err != nil {
		return nil, err
	}

	board := model.NewScoreboard(code)
	if threshold == 0 {
		threshold = c.cfg.DefaultThreshold
	}
	if err := board.SetThreshold(threshold); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	board.CreatedAt = now
	board.UpdatedAt = now

	if err := c.storage.SaveBoard(ctx, board); err != nil {
		c.logger.Error("failed to save board",
			slog.String("board", string(code)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("board created",
		slog.String("board", string(code)),
		slog.Int("win_threshold", board.WinThreshold),
	)

	return board, nil
}

// newBoardCode generates a code not used by any stored board
func (c *Controller) newBoardCode(ctx context.Context) (model.BoardCode, error) {
	for range maxCodeAttempts {
		code := model.BoardCode(c.random.String(BoardCodeLength, BoardCodeAlphabet))
		if code == "" {
			continue
		}
		exists, err := c.storage.BoardExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	c.logger.Error("board code space exhausted", slog.Int("attempts", maxCodeAttempts))
	return "", ErrNoBoardCode
}

// GetBoard retrieves a board by code
func (c *Controller) GetBoard(ctx context.Context, code model.BoardCode) (*model.Scoreboard, error) {
	return c.storage.GetBoard(ctx, code)
}

// ListBoards returns every hosted board, oldest first
func (c *Controller) ListBoards(ctx context.Context) ([]*model.Scoreboard, error) {
	return c.storage.ListBoards(ctx)
}

// DeleteBoard discards a board entirely
func (c *Controller) DeleteBoard(ctx context.Context, code model.BoardCode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	board, err := c.storage.GetBoard(ctx, code)
	if err != nil {
		return err
	}
	if err := c.storage.DeleteBoard(ctx, code); err != nil {
		return err
	}

	c.logger.Info("board deleted", slog.String("board", string(code)))
	c.publish(ctx, board, []model.Event{{Type: model.EventBoardDeleted}})
	return nil
}

// SetThreshold changes a board's win threshold
func (c *Controller) SetThreshold(ctx context.Context, code model.BoardCode, value int) (*model.Scoreboard, model.Event, error) {
	return c.mutate(ctx, code, "set_threshold", func(b *model.Scoreboard) ([]model.Event, error) {
		old := b.WinThreshold
		if err := b.SetThreshold(value); err != nil {
			return nil, err
		}
		return []model.Event{{
			Type:    model.EventThresholdChanged,
			Payload: model.ThresholdChangedPayload{OldThreshold: old, NewThreshold: value},
		}}, nil
	})
}

// AddPlayer adds a player to the end of a board's roster. The event names the
// player as stored, after trimming.
func (c *Controller) AddPlayer(ctx context.Context, code model.BoardCode, name string) (*model.Scoreboard, model.Event, error) {
	return c.mutate(ctx, code, "add_player", func(b *model.Scoreboard) ([]model.Event, error) {
		trimmed, err := b.AddPlayer(name)
		if err != nil {
			return nil, err
		}
		return []model.Event{{Type: model.EventPlayerAdded, Player: trimmed}}, nil
	})
}

// RemovePlayer removes a player from a board. Removing an unknown player
// leaves the board untouched and returns a zero Event.
func (c *Controller) RemovePlayer(ctx context.Context, code model.BoardCode, name string) (*model.Scoreboard, model.Event, error) {
	return c.mutate(ctx, code, "remove_player", func(b *model.Scoreboard) ([]model.Event, error) {
		if !b.RemovePlayer(name) {
			return nil, errNoop
		}
		return []model.Event{{Type: model.EventPlayerRemoved, Player: name}}, nil
	})
}

// AddScore records a round for a player on a board
func (c *Controller) AddScore(ctx context.Context, code model.BoardCode, name string, score int) (*model.Scoreboard, model.Event, error) {
	return c.mutate(ctx, code, "add_score", func(b *model.Scoreboard) ([]model.Event, error) {
		if err := b.AddScore(name, score); err != nil {
			return nil, err
		}
		return []model.Event{{
			Type:    model.EventScoreAdded,
			Player:  name,
			Payload: model.ScoreAddedPayload{Score: score, Total: b.GetPlayer(name).Total()},
		}}, nil
	})
}

// ResetScores clears all round histories on a board, keeping its players
func (c *Controller) ResetScores(ctx context.Context, code model.BoardCode) (*model.Scoreboard, model.Event, error) {
	return c.mutate(ctx, code, "reset_scores", func(b *model.Scoreboard) ([]model.Event, error) {
		b.ResetScores()
		return []model.Event{{Type: model.EventScoresReset}}, nil
	})
}

// ResetGame clears a board's roster, keeping its threshold
func (c *Controller) ResetGame(ctx context.Context, code model.BoardCode) (*model.Scoreboard, model.Event, error) {
	return c.mutate(ctx, code, "reset_game", func(b *model.Scoreboard) ([]model.Event, error) {
		b.ResetGame()
		return []model.Event{{Type: model.EventGameReset}}, nil
	})
}
