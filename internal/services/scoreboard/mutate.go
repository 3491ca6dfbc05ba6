package scoreboard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/scoreboard/internal/model"
)

// errNoop signals an operation that legitimately changed nothing. The board is
// returned as loaded, without being saved or publishing events.
var errNoop = errors.New("no change")

// applyFunc applies one operation and returns its events, primary event first
type applyFunc func(b *model.Scoreboard) ([]model.Event, error)

// mutate loads a board, applies op, saves the result and publishes its events,
// all under c.mu so subscribers observe changes in the order they were stored.
// It returns the stamped primary event, or a zero Event for a no-op. A rejected
// operation stores nothing.
func (c *Controller) mutate(ctx context.Context, code model.BoardCode, op string, apply applyFunc) (*model.Scoreboard, model.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	board, err := c.storage.GetBoard(ctx, code)
	if err != nil {
		return nil, model.Event{}, err
	}

	prevWinner, hadWinner := board.Winner()

	events, err := apply(board)
	if errors.Is(err, errNoop) {
		return board, model.Event{}, nil
	}
	if err != nil {
		c.logger.Debug("scoreboard operation rejected",
			slog.String("board", string(code)),
			slog.String("op", op),
			slog.String("reason", err.Error()),
		)
		return nil, model.Event{}, err
	}

	board.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveBoard(ctx, board); err != nil {
		c.logger.Error("failed to save board",
			slog.String("board", string(code)),
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return nil, model.Event{}, err
	}

	c.logger.Info("scoreboard updated",
		slog.String("board", string(code)),
		slog.String("op", op),
		slog.Int("player_count", len(board.Players)),
	)

	events = append(events, c.winnerEvents(board, prevWinner, hadWinner)...)
	events = c.publish(ctx, board, events)
	return board, events[0], nil
}

// winnerEvents reports a change of the derived winner across a mutation
func (c *Controller) winnerEvents(board *model.Scoreboard, prevWinner string, hadWinner bool) []model.Event {
	winner, hasWinner := board.Winner()
	switch {
	case hasWinner && (!hadWinner || winner != prevWinner):
		p := board.GetPlayer(winner)
		c.logger.Info("winner declared",
			slog.String("board", string(board.Code)),
			slog.String("winner", winner),
			slog.Int("total", p.Total()),
		)
		return []model.Event{{
			Type:    model.EventWinnerDeclared,
			Player:  winner,
			Payload: model.WinnerDeclaredPayload{Winner: winner, Total: p.Total(), Threshold: board.WinThreshold},
		}}
	case hadWinner && !hasWinner:
		return []model.Event{{
			Type:    model.EventWinnerCleared,
			Player:  prevWinner,
			Payload: model.WinnerClearedPayload{PreviousWinner: prevWinner},
		}}
	}
	return nil
}

// publish stamps events and forwards them to the notifier, if any. Callers
// hold c.mu.
func (c *Controller) publish(ctx context.Context, board *model.Scoreboard, events []model.Event) []model.Event {
	now := c.clock.Now()
	for i := range events {
		events[i].Timestamp = now
		events[i].BoardCode = board.Code
	}
	if c.notifier != nil {
		for _, e := range events {
			c.notifier.Notify(ctx, e, board)
		}
	}
	return events
}
