package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/scoreboard/internal/api/request"
	"github.com/mcoot/scoreboard/internal/api/response"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Board management commands",
	}

	cmd.AddCommand(newBoardCreateCmd())
	cmd.AddCommand(newBoardShowCmd())
	cmd.AddCommand(newBoardListCmd())
	cmd.AddCommand(newBoardDeleteCmd())
	cmd.AddCommand(newBoardUseCmd())

	return cmd
}

func newBoardCreateCmd() *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new board and select it",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Board

			req := request.CreateBoardRequest{WinThreshold: threshold}
			if err := client.Post(cmd.Context(), "/api/v1/boards", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveBoard(result.Code); err != nil {
				return fmt.Errorf("failed to save board: %w", err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", 0, "Win threshold (default: server default)")

	return cmd
}

func newBoardShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [code]",
		Short: "Show a board's standings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := boardArg(args)
			if err != nil {
				return err
			}

			var result response.Board
			if err := client.Get(cmd.Context(), boardPath(code), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newBoardListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.BoardList
			if err := client.Get(cmd.Context(), "/api/v1/boards", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newBoardDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [code]",
		Short: "Delete a board",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := boardArg(args)
			if err != nil {
				return err
			}

			if err := client.Delete(cmd.Context(), boardPath(code), nil); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Board %s deleted", code))
			return nil
		},
	}
}

func newBoardUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <code>",
		Short: "Select the board used by later commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := boardArg(args)
			if err != nil {
				return err
			}

			// Make sure it exists before remembering it
			var result response.Board
			if err := client.Get(cmd.Context(), boardPath(code), &result); err != nil {
				return err
			}

			if err := cfg.SaveBoard(result.Code); err != nil {
				return fmt.Errorf("failed to save board: %w", err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Using board %s", result.Code))
			return nil
		},
	}
}

// boardArg returns the board named on the command line, or the selected one
func boardArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return cfg.RequireBoard()
}
