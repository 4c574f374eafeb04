package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/minefield/internal/api/response"
	"github.com/mcoot/minefield/internal/services/bot"
)

func newHintCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "hint <id>",
		Short: "Ask a bot for the next move without playing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.HintResponse

			path := gamePath(args[0]) + "/hint?strategy=" + url.QueryEscape(strategy)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			return NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(result)
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", bot.DefaultStrategy, "Bot strategy: deduction, random")

	return cmd
}

func newAutoplayCmd() *cobra.Command {
	var strategy string
	var maxMoves int

	cmd := &cobra.Command{
		Use:   "autoplay <id>",
		Short: "Let a bot play a game until it ends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if err := authorize(id); err != nil {
				return err
			}

			body := map[string]any{
				"strategy":  strategy,
				"max_moves": maxMoves,
			}

			var result response.AutoplayResponse
			if err := client.Post(gamePath(id)+"/autoplay", body, &result); err != nil {
				return err
			}

			return NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(result)
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", bot.DefaultStrategy, "Bot strategy: deduction, random")
	cmd.Flags().IntVar(&maxMoves, "max-moves", 0, fmt.Sprintf("Stop after this many moves, 0 for up to %d", bot.MaxBotIterations))

	return cmd
}
