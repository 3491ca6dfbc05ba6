package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/scoreboard/internal/api/response"
)

const (
	resetScoresPrompt = "Reset all scores? Players stay on the board."
	resetGamePrompt   = "Start a new game? All players and scores will be removed."
)

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset scores or the whole game",
	}

	cmd.AddCommand(newResetActionCmd("scores", "Clear every player's rounds, keeping the roster", resetScoresPrompt, "reset-scores"))
	cmd.AddCommand(newResetActionCmd("game", "Remove all players, keeping the win threshold", resetGamePrompt, "reset"))

	return cmd
}

func newResetActionCmd(use, short, prompt, endpoint string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := cfg.RequireBoard()
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			if !yes {
				ok, err := confirm(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), prompt)
				if err != nil {
					return err
				}
				if !ok {
					out.PrintMessage("Cancelled")
					return nil
				}
			}

			var result response.BoardUpdate
			if err := client.Post(cmd.Context(), boardPath(code, endpoint), nil, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// confirm asks a yes/no question. End of input counts as no.
func confirm(in *bufio.Reader, out io.Writer, prompt string) (bool, error) {
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
