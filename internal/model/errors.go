package model

import "errors"

// Common errors used across the application
var (
	// Scoreboard rejections. These are validation failures, not faults:
	// the operation was not applied and the scoreboard is unchanged.
	ErrInvalidThreshold = errors.New("win threshold must be a positive integer")
	ErrEmptyPlayerName  = errors.New("player name cannot be empty")
	ErrPlayerExists     = errors.New("player already exists")
	ErrZeroScore        = errors.New("score must be non-zero")
	ErrPlayerNotFound   = errors.New("player not found")

	// Board errors
	ErrBoardNotFound = errors.New("board not found")
)
