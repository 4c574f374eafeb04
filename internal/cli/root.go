package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "minefield",
		Short: "CLI tool for the minefield game server",
		Long: `minefield is a CLI tool for the minefield JSON API.

It creates and plays hosted games, streams their events, and can run a
game locally in the terminal with no server at all.

Owner tokens handed out on creation are kept in the token file so later
commands against the same game are authorised automatically.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: MINEFIELD_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Owner token, overrides the token file (env: MINEFIELD_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: MINEFIELD_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newGameNewCmd())
	rootCmd.AddCommand(newGameListCmd())
	rootCmd.AddCommand(newGameGetCmd())
	rootCmd.AddCommand(newGameMoveCmd("step", "Step on a tile"))
	rootCmd.AddCommand(newGameMoveCmd("flag", "Toggle the flag on a tile"))
	rootCmd.AddCommand(newGameResetCmd())
	rootCmd.AddCommand(newGameAbandonCmd())
	rootCmd.AddCommand(newHintCmd())
	rootCmd.AddCommand(newAutoplayCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
