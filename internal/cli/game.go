package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/minefield/internal/api/response"
	"github.com/mcoot/minefield/internal/model"
)

func gamePath(id string) string {
	return "/api/v1/games/" + id
}

// authorize points the client at the owner token of a game
func authorize(id string) error {
	token, err := cfg.TokenFor(id)
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("no owner token for game %s; pass --token or create the game from this machine", id)
	}
	client.SetToken(token)
	return nil
}

func newGameNewCmd() *cobra.Command {
	var width, height, mines int

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new hosted game",
		Long: `Create a new game on the server.

The owner token is stored in the token file so the other game commands
can find it. A mine count of -1 asks for the default density.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]int{
				"width":  width,
				"height": height,
			}
			if mines >= 0 {
				body["mines"] = mines
			}

			var result response.CreateGameResponse
			if err := client.Post("/api/v1/games", body, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(string(result.Game.ID), result.Token); err != nil {
				return fmt.Errorf("saving token: %w", err)
			}

			return NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(result)
		},
	}

	cmd.Flags().IntVar(&width, "width", 10, "Board width")
	cmd.Flags().IntVar(&height, "height", 10, "Board height")
	cmd.Flags().IntVar(&mines, "mines", -1, "Number of mines")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List hosted games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameList

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			return NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(result)
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game's board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.GameView

			if err := client.Get(gamePath(args[0]), &result); err != nil {
				return err
			}

			return NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(&result)
		},
	}
}

// newGameMoveCmd builds the step and flag commands, which differ only by endpoint
func newGameMoveCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id> <x> <y>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			pos, err := parsePosition(args[1], args[2])
			if err != nil {
				return err
			}

			if err := authorize(id); err != nil {
				return err
			}

			var result response.MoveResponse
			if err := client.Post(gamePath(id)+"/"+action, pos, &result); err != nil {
				return err
			}

			return NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(result)
		},
	}
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Reset a game with a new mine layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if err := authorize(id); err != nil {
				return err
			}

			var result model.GameView
			if err := client.Post(gamePath(id)+"/reset", nil, &result); err != nil {
				return err
			}

			return NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(&result)
		},
	}
}

func newGameAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <id>",
		Short: "Abandon and delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if err := authorize(id); err != nil {
				return err
			}

			if err := client.Delete(gamePath(id)); err != nil {
				return err
			}

			if err := cfg.ForgetToken(id); err != nil {
				return fmt.Errorf("updating token file: %w", err)
			}

			NewOutputTo(cfg.Output, cmd.OutOrStdout()).PrintMessage("Game abandoned")
			return nil
		},
	}
}

func parsePosition(xArg, yArg string) (model.Position, error) {
	x, err := strconv.Atoi(xArg)
	if err != nil {
		return model.Position{}, fmt.Errorf("invalid x: %s", xArg)
	}
	y, err := strconv.Atoi(yArg)
	if err != nil {
		return model.Position{}, fmt.Errorf("invalid y: %s", yArg)
	}
	return model.Position{X: x, Y: y}, nil
}
