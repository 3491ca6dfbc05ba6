package sse

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mcoot/scoreboard/internal/api/response"
	"github.com/mcoot/scoreboard/internal/model"
	"github.com/mcoot/scoreboard/internal/web/views"
)

// SSE event names
const (
	EventBoardUpdate      = "board-update"
	EventScoreboardUpdate = "scoreboard-update"
	EventBoardDeleted     = "board-deleted"
)

// Broadcaster pushes board changes to SSE clients. It implements
// scoreboard.Notifier.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Notify renders the event in both formats and broadcasts it to the board's hub.
// A deleted board's hub is closed after the final message.
func (b *Broadcaster) Notify(ctx context.Context, event model.Event, board *model.Scoreboard) {
	hub := b.hubManager.GetHub(board.Code)
	if hub == nil {
		return
	}

	msg, err := b.Render(ctx, event, board)
	if err != nil {
		b.logger.Error("sse failed to render board",
			slog.String("board", string(board.Code)),
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}
	hub.Broadcast(msg)

	if event.Type == model.EventBoardDeleted {
		b.hubManager.RemoveHub(board.Code)
	}
}

// Render builds the message for an event. Both formats share one event id.
func (b *Broadcaster) Render(ctx context.Context, event model.Event, board *model.Scoreboard) (Message, error) {
	id := uuid.NewString()

	data, err := json.Marshal(response.BoardUpdateFromEvent(event, board))
	if err != nil {
		return Message{}, err
	}

	if event.Type == model.EventBoardDeleted {
		return Message{
			JSON: formatSSEMessageWithID(id, EventBoardDeleted, string(data)),
			HTML: formatSSEMessageWithID(id, EventBoardDeleted, event.Message()),
		}, nil
	}

	html, err := RenderScoreboard(ctx, board)
	if err != nil {
		return Message{}, err
	}

	return Message{
		JSON: formatSSEMessageWithID(id, EventBoardUpdate, string(data)),
		HTML: formatSSEMessageWithID(id, EventScoreboardUpdate, html),
	}, nil
}

// Snapshot renders the current board as a single message, sent to clients on connect
func (b *Broadcaster) Snapshot(ctx context.Context, board *model.Scoreboard, format Format) ([]byte, error) {
	if format == FormatHTML {
		html, err := RenderScoreboard(ctx, board)
		if err != nil {
			return nil, err
		}
		return formatSSEMessage(EventScoreboardUpdate, html), nil
	}
	data, err := json.Marshal(response.NewBoardUpdate(board, ""))
	if err != nil {
		return nil, err
	}
	return formatSSEMessage(EventBoardUpdate, string(data)), nil
}

// RenderScoreboard renders the scoreboard fragment swapped into live pages
func RenderScoreboard(ctx context.Context, board *model.Scoreboard) (string, error) {
	var buf bytes.Buffer
	if err := views.Scoreboard(board).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
