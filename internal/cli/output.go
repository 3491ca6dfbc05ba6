package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/mcoot/scoreboard/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Board:
		o.printBoard(v)
	case response.BoardUpdate:
		o.printBoardUpdate(v)
	case response.BoardList:
		o.printBoardList(v)
	case response.Health:
		_, _ = fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printBoardUpdate(u response.BoardUpdate) {
	if u.Message != "" {
		_, _ = fmt.Fprintln(o.w, u.Message)
	}
	o.printBoard(u.Board)
}

func (o *Output) printBoard(b response.Board) {
	if b.Code != "" {
		_, _ = fmt.Fprintf(o.w, "Board: %s\n", b.Code)
	}
	_, _ = fmt.Fprintf(o.w, "Win threshold: %d\n", b.WinThreshold)
	if b.Winner != nil {
		_, _ = fmt.Fprintf(o.w, "Winner: %s\n", *b.Winner)
	}

	if len(b.Players) == 0 {
		_, _ = fmt.Fprintln(o.w, "No players yet. Add players to start the game.")
		return
	}

	table := tablewriter.NewWriter(o.w)
	table.Header("Player", "Total", "Rounds", "Progress")
	for _, p := range b.Players {
		name := p.Name
		if p.IsWinner {
			name += " *"
		}
		_ = table.Append([]string{
			name,
			strconv.Itoa(p.Total),
			formatRounds(p.Rounds),
			progressBar(p.Progress, 10),
		})
	}
	_ = table.Render()
}

func (o *Output) printBoardList(l response.BoardList) {
	if len(l.Boards) == 0 {
		_, _ = fmt.Fprintln(o.w, "No boards.")
		return
	}

	table := tablewriter.NewWriter(o.w)
	table.Header("Code", "Threshold", "Players", "Winner")
	for _, b := range l.Boards {
		winner := "-"
		if b.Winner != nil {
			winner = *b.Winner
		}
		_ = table.Append([]string{
			b.Code,
			strconv.Itoa(b.WinThreshold),
			strconv.Itoa(len(b.Players)),
			winner,
		})
	}
	_ = table.Render()
}

func formatRounds(rounds []int) string {
	if len(rounds) == 0 {
		return "-"
	}
	parts := make([]string, len(rounds))
	for i, r := range rounds {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, " ")
}

// progressBar renders a fraction in [0,1] as a fixed-width bar with a percentage
func progressBar(fraction float64, width int) string {
	filled := int(fraction*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled) +
		fmt.Sprintf(" %3d%%", int(fraction*100))
}
