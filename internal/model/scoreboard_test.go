package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ScoreboardSuite struct {
	suite.Suite
	board *Scoreboard
}

func TestScoreboardSuite(t *testing.T) {
	suite.Run(t, new(ScoreboardSuite))
}

func (s *ScoreboardSuite) SetupTest() {
	s.board = NewScoreboard("")
}

func (s *ScoreboardSuite) addPlayers(names ...string) {
	for _, name := range names {
		_, err := s.board.AddPlayer(name)
		s.Require().NoError(err)
	}
}

func (s *ScoreboardSuite) addScore(name string, score int) {
	s.Require().NoError(s.board.AddScore(name, score))
}

func (s *ScoreboardSuite) requireWinner(expected string) {
	winner, ok := s.board.Winner()
	s.Require().True(ok, "expected a winner")
	s.Equal(expected, winner)
}

func (s *ScoreboardSuite) requireNoWinner() {
	winner, ok := s.board.Winner()
	s.False(ok, "expected no winner, got %q", winner)
}

// Construction

func (s *ScoreboardSuite) TestNewScoreboardDefaults() {
	s.Empty(s.board.Players)
	s.Equal(DefaultWinThreshold, s.board.WinThreshold)
	s.Equal(200, s.board.WinThreshold)
	s.requireNoWinner()
	s.False(s.board.IsGameOver())
}

// SetThreshold

func (s *ScoreboardSuite) TestSetThresholdAcceptsPositiveValues() {
	for _, v := range []int{1, 120, 200, 10000} {
		s.Require().NoError(s.board.SetThreshold(v))
		s.Equal(v, s.board.WinThreshold)
	}
}

func (s *ScoreboardSuite) TestSetThresholdRejectsNonPositive() {
	s.Require().NoError(s.board.SetThreshold(150))

	for _, v := range []int{0, -1, -200} {
		err := s.board.SetThreshold(v)
		s.ErrorIs(err, ErrInvalidThreshold)
		s.Equal(150, s.board.WinThreshold)
	}
}

func (s *ScoreboardSuite) TestSetThresholdReevaluatesWinner() {
	s.addPlayers("A")
	s.addScore("A", 100)
	s.requireNoWinner()

	s.Require().NoError(s.board.SetThreshold(100))
	s.requireWinner("A")

	s.Require().NoError(s.board.SetThreshold(101))
	s.requireNoWinner()
}

// AddPlayer

func (s *ScoreboardSuite) TestAddPlayerAppendsInOrder() {
	s.addPlayers("Alice", "Bob", "Carol")

	s.Require().Len(s.board.Players, 3)
	s.Equal("Alice", s.board.Players[0].Name)
	s.Equal("Bob", s.board.Players[1].Name)
	s.Equal("Carol", s.board.Players[2].Name)
	s.Empty(s.board.Players[0].Rounds)
}

func (s *ScoreboardSuite) TestAddPlayerTrimsWhitespace() {
	name, err := s.board.AddPlayer("  Alice\t")
	s.Require().NoError(err)
	s.Equal("Alice", name)
	s.NotNil(s.board.GetPlayer("Alice"))
}

func (s *ScoreboardSuite) TestAddPlayerRejectsDuplicate() {
	s.addPlayers("Alice")

	_, err := s.board.AddPlayer("Alice")
	s.ErrorIs(err, ErrPlayerExists)

	_, err = s.board.AddPlayer(" Alice ")
	s.ErrorIs(err, ErrPlayerExists)

	s.Len(s.board.Players, 1)
}

func (s *ScoreboardSuite) TestAddPlayerIsCaseSensitive() {
	s.addPlayers("Alice")

	_, err := s.board.AddPlayer("alice")
	s.Require().NoError(err)
	s.Len(s.board.Players, 2)
}

func (s *ScoreboardSuite) TestAddPlayerRejectsEmpty() {
	_, err := s.board.AddPlayer("")
	s.ErrorIs(err, ErrEmptyPlayerName)

	_, err = s.board.AddPlayer("   ")
	s.ErrorIs(err, ErrEmptyPlayerName)

	s.Empty(s.board.Players)
}

func (s *ScoreboardSuite) TestAddPlayerDoesNotAffectWinner() {
	s.Require().NoError(s.board.SetThreshold(50))
	s.addPlayers("A")
	s.addScore("A", 60)

	s.addPlayers("B")
	s.requireWinner("A")
}

// RemovePlayer

func (s *ScoreboardSuite) TestRemovePlayer() {
	s.addPlayers("A", "B", "C")

	s.True(s.board.RemovePlayer("B"))

	s.Require().Len(s.board.Players, 2)
	s.Equal("A", s.board.Players[0].Name)
	s.Equal("C", s.board.Players[1].Name)
}

func (s *ScoreboardSuite) TestRemoveUnknownPlayerIsNoop() {
	s.addPlayers("A")
	s.addScore("A", 10)
	before := s.board.Clone()

	s.False(s.board.RemovePlayer("Nobody"))
	s.Equal(before.Players, s.board.Players)
	s.Equal(before.WinThreshold, s.board.WinThreshold)
}

func (s *ScoreboardSuite) TestRemoveWinnerSelectsNextQualifying() {
	s.Require().NoError(s.board.SetThreshold(100))
	s.addPlayers("A", "B", "C")
	s.addScore("A", 100)
	s.addScore("C", 150)
	s.requireWinner("A")

	s.board.RemovePlayer("A")
	s.requireWinner("C")

	s.board.RemovePlayer("C")
	s.requireNoWinner()
}

// AddScore

func (s *ScoreboardSuite) TestAddScoreAppendsRounds() {
	s.addPlayers("A")
	s.addScore("A", 30)
	s.addScore("A", -5)
	s.addScore("A", 12)

	player := s.board.GetPlayer("A")
	s.Equal([]int{30, -5, 12}, player.Rounds)
	s.Equal(37, player.Total())
	s.Equal(3, player.RoundCount())
}

func (s *ScoreboardSuite) TestAddScoreRejectsZero() {
	s.addPlayers("A")
	s.addScore("A", 10)

	err := s.board.AddScore("A", 0)
	s.ErrorIs(err, ErrZeroScore)
	s.Equal([]int{10}, s.board.GetPlayer("A").Rounds)
}

func (s *ScoreboardSuite) TestAddScoreRejectsUnknownPlayer() {
	err := s.board.AddScore("Ghost", 10)
	s.ErrorIs(err, ErrPlayerNotFound)
}

func (s *ScoreboardSuite) TestZeroCheckPrecedesPlayerLookup() {
	err := s.board.AddScore("Ghost", 0)
	s.ErrorIs(err, ErrZeroScore)
}

func (s *ScoreboardSuite) TestNegativeScoreCanClearWinner() {
	s.Require().NoError(s.board.SetThreshold(50))
	s.addPlayers("A")
	s.addScore("A", 50)
	s.requireWinner("A")

	s.addScore("A", -1)
	s.requireNoWinner()
}

// Winner selection

func (s *ScoreboardSuite) TestWinnerHigherScoreLaterPlayer() {
	s.Require().NoError(s.board.SetThreshold(120))
	s.addPlayers("A", "B")
	s.addScore("A", 100)
	s.addScore("B", 150)

	s.requireWinner("B")
}

func (s *ScoreboardSuite) TestWinnerEarliestAddedWinsTie() {
	s.Require().NoError(s.board.SetThreshold(120))
	s.addPlayers("A", "B")
	s.addScore("A", 100)
	s.addScore("B", 150)
	s.requireWinner("B")

	// A now qualifies too and is earlier in the roster
	s.addScore("A", 50)
	s.requireWinner("A")
}

func (s *ScoreboardSuite) TestWinnerExactlyAtThreshold() {
	s.addPlayers("A")
	s.addScore("A", 200)
	s.requireWinner("A")
	s.True(s.board.IsGameOver())
}

func (s *ScoreboardSuite) TestFindWinnerEmptyRoster() {
	_, ok := FindWinner(nil, 1)
	s.False(ok)
}

// Resets

func (s *ScoreboardSuite) TestResetScoresKeepsRosterAndThreshold() {
	s.Require().NoError(s.board.SetThreshold(50))
	s.addPlayers("A", "B")
	s.addScore("A", 60)
	s.addScore("B", 10)
	s.requireWinner("A")

	s.board.ResetScores()

	s.Require().Len(s.board.Players, 2)
	s.Empty(s.board.Players[0].Rounds)
	s.Empty(s.board.Players[1].Rounds)
	s.Equal(50, s.board.WinThreshold)
	s.requireNoWinner()
}

func (s *ScoreboardSuite) TestResetGameKeepsThreshold() {
	s.Require().NoError(s.board.SetThreshold(75))
	s.addPlayers("A", "B")
	s.addScore("A", 80)

	s.board.ResetGame()

	s.Empty(s.board.Players)
	s.Equal(75, s.board.WinThreshold)
	s.requireNoWinner()
}

func (s *ScoreboardSuite) TestResetGameIsIdempotent() {
	s.addPlayers("A")
	s.board.ResetGame()
	once := s.board.Clone()

	s.board.ResetGame()

	s.Equal(once, s.board)
}

// Clone

func (s *ScoreboardSuite) TestCloneIsDeep() {
	s.addPlayers("A")
	s.addScore("A", 5)

	c := s.board.Clone()
	s.Require().NoError(c.AddScore("A", 7))
	_, err := c.AddPlayer("B")
	s.Require().NoError(err)

	s.Equal([]int{5}, s.board.GetPlayer("A").Rounds)
	s.Len(s.board.Players, 1)
}

func TestPlayerProgress(t *testing.T) {
	tests := []struct {
		name      string
		rounds    []int
		threshold int
		expected  float64
	}{
		{"no rounds", nil, 200, 0},
		{"halfway", []int{50, 50}, 200, 0.5},
		{"over threshold clamps", []int{300}, 200, 1},
		{"negative clamps", []int{-20}, 200, 0},
		{"invalid threshold", []int{10}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Player{Name: "p", Rounds: tt.rounds}
			if got := p.Progress(tt.threshold); got != tt.expected {
				t.Errorf("Progress(%d) = %v, want %v", tt.threshold, got, tt.expected)
			}
		})
	}
}

func TestParseBoardCode(t *testing.T) {
	assert.Equal(t, BoardCode("ABC123"), ParseBoardCode(" abc123 "))
	assert.Equal(t, BoardCode(""), ParseBoardCode("   "))
}
