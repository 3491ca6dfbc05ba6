package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/scoreboard/internal/api/request"
	"github.com/mcoot/scoreboard/internal/api/response"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Scoring commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <score>",
		Short: "Record a round score for a player (negative allowed, zero rejected)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := cfg.RequireBoard()
			if err != nil {
				return err
			}

			score, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid score %q: must be an integer", args[1])
			}

			var result response.BoardUpdate
			req := request.AddScoreRequest{Score: &score}
			if err := client.Post(cmd.Context(), boardPath(code, "players", args[0], "scores"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	})

	return cmd
}

func newThresholdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threshold",
		Short: "Win threshold commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <value>",
		Short: "Set the win threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := cfg.RequireBoard()
			if err != nil {
				return err
			}

			value, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid threshold %q: must be an integer", args[0])
			}

			var result response.BoardUpdate
			req := request.SetThresholdRequest{WinThreshold: &value}
			if err := client.Put(cmd.Context(), boardPath(code, "threshold"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	})

	return cmd
}
