package model

import (
	"strings"
	"time"
)

// DefaultWinThreshold is the cumulative score that wins a game unless configured otherwise
const DefaultWinThreshold = 200

// BoardCode is a short human-readable identifier for a hosted scoreboard
type BoardCode string

// ParseBoardCode normalises user input into a BoardCode
func ParseBoardCode(s string) BoardCode {
	return BoardCode(strings.ToUpper(strings.TrimSpace(s)))
}

// Scoreboard is the state of one game: the roster, the win threshold and,
// derived from those two, the winner.
//
// A Scoreboard is a plain value with no locking. Callers that share one
// between goroutines must serialise access themselves.
type Scoreboard struct {
	Code         BoardCode // empty for a standalone scoreboard
	Players      []Player  // insertion order is display order
	WinThreshold int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewScoreboard creates an empty scoreboard with the default win threshold
func NewScoreboard(code BoardCode) *Scoreboard {
	return &Scoreboard{
		Code:         code,
		Players:      []Player{},
		WinThreshold: DefaultWinThreshold,
	}
}

// SetThreshold changes the win threshold. Non-positive values are rejected.
func (s *Scoreboard) SetThreshold(value int) error {
	if value <= 0 {
		return ErrInvalidThreshold
	}
	s.WinThreshold = value
	return nil
}

// AddPlayer appends a new player with no rounds to the end of the roster.
// The name is trimmed first; the trimmed name is returned on success.
func (s *Scoreboard) AddPlayer(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyPlayerName
	}
	if s.GetPlayer(name) != nil {
		return "", ErrPlayerExists
	}
	s.Players = append(s.Players, Player{Name: name, Rounds: []int{}})
	return name, nil
}

// RemovePlayer removes the named player. Removing an unknown name is a no-op;
// the return value reports whether a player was removed.
func (s *Scoreboard) RemovePlayer(name string) bool {
	for i := range s.Players {
		if s.Players[i].Name == name {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			return true
		}
	}
	return false
}

// AddScore records a round for the named player. Zero-point rounds are rejected.
func (s *Scoreboard) AddScore(name string, score int) error {
	if score == 0 {
		return ErrZeroScore
	}
	player := s.GetPlayer(name)
	if player == nil {
		return ErrPlayerNotFound
	}
	player.Rounds = append(player.Rounds, score)
	return nil
}

// ResetScores clears every player's round history, keeping the roster
func (s *Scoreboard) ResetScores() {
	for i := range s.Players {
		s.Players[i].Rounds = []int{}
	}
}

// ResetGame clears the roster. The win threshold is preserved.
func (s *Scoreboard) ResetGame() {
	s.Players = []Player{}
}

// GetPlayer returns the named player, or nil if not on the roster
func (s *Scoreboard) GetPlayer(name string) *Player {
	for i := range s.Players {
		if s.Players[i].Name == name {
			return &s.Players[i]
		}
	}
	return nil
}

// Winner returns the name of the winning player and true, or "" and false if
// nobody has reached the threshold.
func (s *Scoreboard) Winner() (string, bool) {
	return FindWinner(s.Players, s.WinThreshold)
}

// IsGameOver reports whether a winner currently exists
func (s *Scoreboard) IsGameOver() bool {
	_, ok := s.Winner()
	return ok
}

// FindWinner scans players in roster order and returns the first whose total
// meets the threshold. Earlier players win ties regardless of score.
func FindWinner(players []Player, threshold int) (string, bool) {
	for i := range players {
		if players[i].Reaches(threshold) {
			return players[i].Name, true
		}
	}
	return "", false
}

// Clone returns a deep copy of the scoreboard
func (s *Scoreboard) Clone() *Scoreboard {
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = p.clone()
	}
	c := *s
	c.Players = players
	return &c
}
