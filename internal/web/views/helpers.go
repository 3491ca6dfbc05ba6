// Package views renders the read-only scoreboard pages.
//
// Components are written as .templ files; the matching _templ.go files are
// produced by `task generate` and committed.
package views

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/scoreboard/internal/model"
)

// ScoreboardElementID is the id of the element swapped by live updates
const ScoreboardElementID = "scoreboard"

func boardURL(code model.BoardCode) templ.SafeURL {
	return templ.URL("/boards/" + string(code))
}

func eventsURL(code model.BoardCode) string {
	return "/boards/" + string(code) + "/events"
}

func isWinner(board *model.Scoreboard, name string) bool {
	winner, ok := board.Winner()
	return ok && winner == name
}

// progressPercent is the player's progress towards threshold, 0 to 100
func progressPercent(p *model.Player, threshold int) string {
	return strconv.Itoa(int(p.Progress(threshold) * 100))
}

func formatRounds(rounds []int) string {
	if len(rounds) == 0 {
		return "no rounds"
	}
	parts := make([]string, len(rounds))
	for i, r := range rounds {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
