package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var envErr error
	cfg, envErr = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "scorectl",
		Short: "CLI tool for the scoreboard server",
		Long: `scorectl keeps score for multi-round games.

It drives a scoreboard server over its JSON API (boards, players, scores,
thresholds and resets), streams live board events, and can run a local
interactive scoreboard with 'scorectl play'.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			if cfg.Output != "text" && cfg.Output != "json" {
				return fmt.Errorf("invalid output format %q: must be text or json", cfg.Output)
			}
			// Load board from file if not provided via flag/env
			if err := cfg.LoadBoard(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: SCORECTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Board, "board", cfg.Board, "Board code (env: SCORECTL_BOARD)")
	rootCmd.PersistentFlags().StringVar(&cfg.BoardFile, "board-file", cfg.BoardFile, "Board file path (env: SCORECTL_BOARD_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newBoardCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newThresholdCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
