package request

// CreateBoardRequest is the request body for creating a board
type CreateBoardRequest struct {
	WinThreshold int `json:"win_threshold,omitempty"`
}

// SetThresholdRequest is the request body for changing the win threshold
type SetThresholdRequest struct {
	WinThreshold *int `json:"win_threshold"`
}

// AddPlayerRequest is the request body for adding a player
type AddPlayerRequest struct {
	Name string `json:"name"`
}

// AddScoreRequest is the request body for recording a round
type AddScoreRequest struct {
	Score *int `json:"score"`
}
