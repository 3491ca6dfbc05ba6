package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scoreboard/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newBoard(code model.BoardCode, created time.Time) *model.Scoreboard {
	board := model.NewScoreboard(code)
	board.CreatedAt = created
	board.UpdatedAt = created
	return board
}

func (s *StorageSuite) TestSaveAndGetBoard() {
	board := s.newBoard("ABC123", time.Now())
	_, err := board.AddPlayer("Alice")
	s.Require().NoError(err)

	err = s.storage.SaveBoard(s.ctx, board)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetBoard(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(board.Code, retrieved.Code)
	s.Equal(board.WinThreshold, retrieved.WinThreshold)
	s.Require().Len(retrieved.Players, 1)
	s.Equal("Alice", retrieved.Players[0].Name)
}

func (s *StorageSuite) TestGetBoardNotFound() {
	_, err := s.storage.GetBoard(s.ctx, "NONEXISTENT")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *StorageSuite) TestMutatingLoadedBoardDoesNotChangeStoredBoard() {
	board := s.newBoard("ABC123", time.Now())
	_, _ = board.AddPlayer("Alice")
	_ = s.storage.SaveBoard(s.ctx, board)

	loaded, _ := s.storage.GetBoard(s.ctx, "ABC123")
	s.Require().NoError(loaded.AddScore("Alice", 50))
	_, _ = loaded.AddPlayer("Bob")

	again, err := s.storage.GetBoard(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Len(again.Players, 1)
	s.Empty(again.Players[0].Rounds)
}

func (s *StorageSuite) TestMutatingSavedBoardDoesNotChangeStoredBoard() {
	board := s.newBoard("ABC123", time.Now())
	_ = s.storage.SaveBoard(s.ctx, board)

	_, _ = board.AddPlayer("Alice")

	stored, _ := s.storage.GetBoard(s.ctx, "ABC123")
	s.Empty(stored.Players)
}

func (s *StorageSuite) TestDeleteBoard() {
	_ = s.storage.SaveBoard(s.ctx, s.newBoard("ABC123", time.Now()))

	err := s.storage.DeleteBoard(s.ctx, "ABC123")
	s.Require().NoError(err)

	_, err = s.storage.GetBoard(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *StorageSuite) TestDeleteMissingBoardIsNoop() {
	err := s.storage.DeleteBoard(s.ctx, "NONEXISTENT")
	s.NoError(err)
}

func (s *StorageSuite) TestBoardExists() {
	exists, err := s.storage.BoardExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveBoard(s.ctx, s.newBoard("ABC123", time.Now()))

	exists, err = s.storage.BoardExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestListBoardsOldestFirst() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveBoard(s.ctx, s.newBoard("CCC333", base.Add(2*time.Minute)))
	_ = s.storage.SaveBoard(s.ctx, s.newBoard("AAA111", base))
	_ = s.storage.SaveBoard(s.ctx, s.newBoard("BBB222", base.Add(time.Minute)))

	boards, err := s.storage.ListBoards(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(boards, 3)
	s.Equal(model.BoardCode("AAA111"), boards[0].Code)
	s.Equal(model.BoardCode("BBB222"), boards[1].Code)
	s.Equal(model.BoardCode("CCC333"), boards[2].Code)
}

func (s *StorageSuite) TestListBoardsEmpty() {
	boards, err := s.storage.ListBoards(s.ctx)
	s.Require().NoError(err)
	s.Empty(boards)
}
