package storage

import (
	"context"

	"github.com/mcoot/scoreboard/internal/model"
)

// Storage defines the interface for holding hosted scoreboards
type Storage interface {
	// Scoreboard operations
	SaveBoard(ctx context.Context, board *model.Scoreboard) error
	GetBoard(ctx context.Context, code model.BoardCode) (*model.Scoreboard, error)
	DeleteBoard(ctx context.Context, code model.BoardCode) error
	BoardExists(ctx context.Context, code model.BoardCode) (bool, error)
	ListBoards(ctx context.Context) ([]*model.Scoreboard, error)
}
