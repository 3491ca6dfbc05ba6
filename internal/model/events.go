package model

import (
	"fmt"
	"time"
)

// EventType identifies the type of event
type EventType string

const (
	// Roster events
	EventPlayerAdded   EventType = "player_added"
	EventPlayerRemoved EventType = "player_removed"

	// Scoring events
	EventScoreAdded       EventType = "score_added"
	EventThresholdChanged EventType = "threshold_changed"
	EventScoresReset      EventType = "scores_reset"
	EventGameReset        EventType = "game_reset"

	// Derived winner transitions
	EventWinnerDeclared EventType = "winner_declared"
	EventWinnerCleared  EventType = "winner_cleared"

	// Board lifecycle
	EventBoardDeleted EventType = "board_deleted"
)

// Event describes a change to a hosted scoreboard
type Event struct {
	Type      EventType
	Timestamp time.Time
	BoardCode BoardCode
	Player    string // The player affected, empty for board-wide events
	Payload   any    // Type-specific data
}

// ScoreAddedPayload contains data for score added events
type ScoreAddedPayload struct {
	Score int
	Total int
}

// ThresholdChangedPayload contains data for threshold changed events
type ThresholdChangedPayload struct {
	OldThreshold int
	NewThreshold int
}

// WinnerDeclaredPayload contains data for winner declared events
type WinnerDeclaredPayload struct {
	Winner    string
	Total     int
	Threshold int
}

// WinnerClearedPayload contains data for winner cleared events
type WinnerClearedPayload struct {
	PreviousWinner string
}

// IsZero reports whether e is the empty event returned when nothing changed
func (e Event) IsZero() bool {
	return e.Type == ""
}

// Message returns the user-facing notification for the event
func (e Event) Message() string {
	switch e.Type {
	case EventPlayerAdded:
		return fmt.Sprintf("Player %s added", e.Player)
	case EventPlayerRemoved:
		return fmt.Sprintf("Player %s removed", e.Player)
	case EventScoreAdded:
		if p, ok := e.Payload.(ScoreAddedPayload); ok {
			return fmt.Sprintf("%s scored %d", e.Player, p.Score)
		}
		return fmt.Sprintf("%s scored", e.Player)
	case EventThresholdChanged:
		if p, ok := e.Payload.(ThresholdChangedPayload); ok {
			return fmt.Sprintf("Win threshold set to %d", p.NewThreshold)
		}
		return "Win threshold changed"
	case EventScoresReset:
		return "Scores reset"
	case EventGameReset:
		return "Game reset"
	case EventWinnerDeclared:
		return fmt.Sprintf("%s wins!", e.Player)
	case EventWinnerCleared:
		return "No winner yet"
	case EventBoardDeleted:
		return "Board deleted"
	}
	return string(e.Type)
}
