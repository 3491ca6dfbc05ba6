package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/scoreboard/internal/api/response"
	"github.com/mcoot/scoreboard/internal/model"
)

const playHelp = `Commands:
  add <name>             add a player
  remove <name>          remove a player
  score <name> <points>  record a round (negative allowed, zero rejected)
  threshold <value>      set the win threshold
  reset-scores           clear all rounds, keep players
  reset-game             remove all players, keep the threshold
  show                   print the standings
  help                   show this help
  quit                   leave`

var errQuit = errors.New("quit")

func newPlayCmd() *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Keep score locally in an interactive session",
		Long: `Run a scoreboard in this terminal without a server.

` + playHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board := model.NewScoreboard("")
			if threshold != 0 {
				if err := board.SetThreshold(threshold); err != nil {
					return err
				}
			}
			session := &playSession{
				board: board,
				in:    bufio.NewReader(cmd.InOrStdin()),
				w:     cmd.OutOrStdout(),
				out:   NewOutput(cfg.Output, cmd.OutOrStdout()),
			}
			return session.run()
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", model.DefaultWinThreshold, "Win threshold")

	return cmd
}

// playSession is an interactive loop over a local scoreboard
type playSession struct {
	board *model.Scoreboard
	in    *bufio.Reader
	w     io.Writer
	out   *Output
}

func (s *playSession) run() error {
	_, _ = fmt.Fprintf(s.w, "Scoreboard ready. Win threshold: %d. Type 'help' for commands.\n", s.board.WinThreshold)
	for {
		_, _ = fmt.Fprint(s.w, "> ")
		line, err := s.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := errors.Is(err, io.EOF)

		if strings.TrimSpace(line) != "" {
			switch cmdErr := s.exec(line); {
			case errors.Is(cmdErr, errQuit):
				return nil
			case cmdErr != nil:
				_, _ = fmt.Fprintf(s.w, "Error: %s\n", describe(cmdErr))
			}
		}

		if eof {
			_, _ = fmt.Fprintln(s.w)
			return nil
		}
	}
}

// exec runs one command line against the board
func (s *playSession) exec(line string) error {
	fields := strings.Fields(line)
	verb, rest := strings.ToLower(fields[0]), strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch verb {
	case "add":
		name, err := s.board.AddPlayer(rest)
		if err != nil {
			return err
		}
		s.report(model.Event{Type: model.EventPlayerAdded, Player: name})

	case "remove", "rm":
		if !s.board.RemovePlayer(rest) {
			s.out.PrintMessage(fmt.Sprintf("Player %s not on the board", rest))
			return nil
		}
		s.report(model.Event{Type: model.EventPlayerRemoved, Player: rest})

	case "score":
		if len(fields) < 3 {
			return errors.New("usage: score <name> <points>")
		}
		raw := fields[len(fields)-1]
		points, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid score %q: must be an integer", raw)
		}
		name := strings.TrimSpace(strings.TrimSuffix(rest, raw))
		if err := s.board.AddScore(name, points); err != nil {
			return err
		}
		s.report(model.Event{Type: model.EventScoreAdded, Player: name, Payload: model.ScoreAddedPayload{Score: points}})

	case "threshold":
		value, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("invalid threshold %q: must be an integer", rest)
		}
		if err := s.board.SetThreshold(value); err != nil {
			return err
		}
		s.report(model.Event{Type: model.EventThresholdChanged, Payload: model.ThresholdChangedPayload{NewThreshold: value}})

	case "reset-scores":
		if ok, err := s.confirm(resetScoresPrompt); err != nil || !ok {
			return err
		}
		s.board.ResetScores()
		s.report(model.Event{Type: model.EventScoresReset})

	case "reset-game", "new":
		if ok, err := s.confirm(resetGamePrompt); err != nil || !ok {
			return err
		}
		s.board.ResetGame()
		s.report(model.Event{Type: model.EventGameReset})

	case "show":
		s.out.Print(response.BoardFromModel(s.board))

	case "help", "?":
		_, _ = fmt.Fprintln(s.w, playHelp)

	case "quit", "exit", "q":
		return errQuit

	default:
		return fmt.Errorf("unknown command %q (type 'help')", verb)
	}
	return nil
}

// confirm asks before a destructive command, reporting a refusal
func (s *playSession) confirm(prompt string) (bool, error) {
	ok, err := confirm(s.in, s.w, prompt)
	if err == nil && !ok {
		s.out.PrintMessage("Cancelled")
	}
	return ok, err
}

// report prints the notification and the standings after a change
func (s *playSession) report(e model.Event) {
	s.out.Print(response.NewBoardUpdate(s.board, e.Message()))
}

// describe turns validation errors into user-facing text
func describe(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidThreshold):
		return "win threshold must be a positive integer"
	case errors.Is(err, model.ErrEmptyPlayerName):
		return "player name cannot be empty"
	case errors.Is(err, model.ErrPlayerExists):
		return "that player is already on the board"
	case errors.Is(err, model.ErrZeroScore):
		return "a round score cannot be zero"
	case errors.Is(err, model.ErrPlayerNotFound):
		return "no such player"
	default:
		return err.Error()
	}
}
