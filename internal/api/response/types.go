package response

import (
	"time"

	"github.com/mcoot/scoreboard/internal/model"
)

// Player represents a board player in API responses
type Player struct {
	Name       string  `json:"name"`
	Rounds     []int   `json:"rounds"`
	Total      int     `json:"total"`
	RoundCount int     `json:"round_count"`
	Progress   float64 `json:"progress"`
	IsWinner   bool    `json:"is_winner"`
}

// Board represents a scoreboard in API responses
type Board struct {
	Code         string    `json:"code"`
	WinThreshold int       `json:"win_threshold"`
	Players      []Player  `json:"players"`
	Winner       *string   `json:"winner"`
	GameOver     bool      `json:"game_over"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BoardFromModel converts a model.Scoreboard, resolving derived state
func BoardFromModel(b *model.Scoreboard) Board {
	winnerName, hasWinner := b.Winner()

	players := make([]Player, len(b.Players))
	for i := range b.Players {
		p := &b.Players[i]
		rounds := make([]int, len(p.Rounds))
		copy(rounds, p.Rounds)
		players[i] = Player{
			Name:       p.Name,
			Rounds:     rounds,
			Total:      p.Total(),
			RoundCount: p.RoundCount(),
			Progress:   p.Progress(b.WinThreshold),
			IsWinner:   hasWinner && p.Name == winnerName,
		}
	}

	var winner *string
	if hasWinner {
		winner = &winnerName
	}

	return Board{
		Code:         string(b.Code),
		WinThreshold: b.WinThreshold,
		Players:      players,
		Winner:       winner,
		GameOver:     hasWinner,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// BoardList is the response for listing boards
type BoardList struct {
	Boards []Board `json:"boards"`
}

// BoardListFromModel converts a slice of boards
func BoardListFromModel(boards []*model.Scoreboard) BoardList {
	out := make([]Board, len(boards))
	for i, b := range boards {
		out[i] = BoardFromModel(b)
	}
	return BoardList{Boards: out}
}

// BoardUpdate is the response for mutations and the payload of board events
type BoardUpdate struct {
	Board   Board  `json:"board"`
	Message string `json:"message"`
	Event   string `json:"event,omitempty"`
	Removed *bool  `json:"removed,omitempty"`
}

// NewBoardUpdate builds an update carrying a notification message
func NewBoardUpdate(b *model.Scoreboard, message string) BoardUpdate {
	return BoardUpdate{Board: BoardFromModel(b), Message: message}
}

// BoardUpdateFromEvent builds the update published for an event
func BoardUpdateFromEvent(e model.Event, b *model.Scoreboard) BoardUpdate {
	u := NewBoardUpdate(b, e.Message())
	u.Event = string(e.Type)
	return u
}

// Health is the response for the health endpoint
type Health struct {
	Status string `json:"status"`
}
