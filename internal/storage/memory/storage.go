package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/scoreboard/internal/model"
	"github.com/mcoot/scoreboard/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Boards are copied on the way in and out, so a loaded board can be mutated
// freely without touching stored state until it is saved.
type Storage struct {
	mu     sync.RWMutex
	boards map[model.BoardCode]*model.Scoreboard
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		boards: make(map[model.BoardCode]*model.Scoreboard),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveBoard(ctx context.Context, board *model.Scoreboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[board.Code] = board.Clone()
	return nil
}

func (s *Storage) GetBoard(ctx context.Context, code model.BoardCode) (*model.Scoreboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	board, ok := s.boards[code]
	if !ok {
		return nil, model.ErrBoardNotFound
	}
	return board.Clone(), nil
}

func (s *Storage) DeleteBoard(ctx context.Context, code model.BoardCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, code)
	return nil
}

func (s *Storage) BoardExists(ctx context.Context, code model.BoardCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.boards[code]
	return ok, nil
}

// ListBoards returns all boards, oldest first
func (s *Storage) ListBoards(ctx context.Context) ([]*model.Scoreboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	boards := make([]*model.Scoreboard, 0, len(s.boards))
	for _, board := range s.boards {
		boards = append(boards, board.Clone())
	}
	sort.Slice(boards, func(i, j int) bool {
		if boards[i].CreatedAt.Equal(boards[j].CreatedAt) {
			return boards[i].Code < boards[j].Code
		}
		return boards[i].CreatedAt.Before(boards[j].CreatedAt)
	})
	return boards, nil
}
