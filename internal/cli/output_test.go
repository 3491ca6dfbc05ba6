package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scoreboard/internal/api/response"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		fraction float64
		expected string
	}{
		{0, "..........   0%"},
		{0.5, "#####.....  50%"},
		{1, "########## 100%"},
		{0.04, "..........   4%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, progressBar(tt.fraction, 10))
	}
}

func TestFormatRounds(t *testing.T) {
	assert.Equal(t, "-", formatRounds(nil))
	assert.Equal(t, "10 -5 30", formatRounds([]int{10, -5, 30}))
}

func TestPrintBoardText(t *testing.T) {
	winner := "Alice"
	board := response.Board{
		Code:         "ABC123",
		WinThreshold: 100,
		Winner:       &winner,
		Players: []response.Player{
			{Name: "Alice", Rounds: []int{60, 50}, Total: 110, Progress: 1, IsWinner: true},
			{Name: "Bob", Rounds: []int{}, Total: 0},
		},
	}

	var buf bytes.Buffer
	NewOutput("text", &buf).Print(board)
	out := buf.String()

	assert.Contains(t, out, "Board: ABC123")
	assert.Contains(t, out, "Win threshold: 100")
	assert.Contains(t, out, "Winner: Alice")
	assert.Contains(t, out, "Alice *")
	assert.Contains(t, out, "60 50")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "Bob")
}

func TestPrintEmptyBoardText(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf).Print(response.Board{Code: "ABC123", WinThreshold: 200, Players: []response.Player{}})

	assert.Contains(t, buf.String(), "No players yet")
	assert.NotContains(t, buf.String(), "Winner")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("json", &buf).Print(response.BoardUpdate{Message: "Scores reset", Board: response.Board{Code: "ABC123"}})

	var decoded response.BoardUpdate
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Scores reset", decoded.Message)
	assert.Equal(t, "ABC123", decoded.Board.Code)

	buf.Reset()
	NewOutput("json", &buf).PrintMessage("done")
	assert.JSONEq(t, `{"message":"done"}`, buf.String())
}
