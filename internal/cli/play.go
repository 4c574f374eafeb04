package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/minefield/internal/dependencies/random"
	"github.com/mcoot/minefield/internal/engine"
	"github.com/mcoot/minefield/internal/model"
	"github.com/mcoot/minefield/internal/services/bot"
)

const playHelp = `Commands:
  s <x> <y>   step on a tile
  f <x> <y>   toggle a flag
  b           let the bot make a move
  r           reset with a new layout
  h           show this help
  q           quit`

func newPlayCmd() *cobra.Command {
	var width, height, mines int

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a local game in the terminal",
		Long: `Play a game locally without a server.

` + playHelp,
		Args: cobra.NoArgs,
		// Local play never talks to the server
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			rnd := random.New()
			game, err := engine.New(engine.Config{Width: width, Height: height, Mines: mines}, engine.WithRandom(rnd))
			if err != nil {
				return err
			}
			helper := bot.NewDeductionStrategy(bot.NewRandomStrategy(rnd))
			return playLoop(cmd.InOrStdin(), cmd.OutOrStdout(), game, helper)
		},
	}

	cmd.Flags().IntVar(&width, "width", 9, "Board width")
	cmd.Flags().IntVar(&height, "height", 9, "Board height")
	cmd.Flags().IntVar(&mines, "mines", engine.AutoMines, "Number of mines, -1 for the default density")

	return cmd
}

// playLoop reads commands from in until quit or end of input.
// The helper strategy plays the b command.
func playLoop(in io.Reader, out io.Writer, game *engine.Game, helper bot.Strategy) error {
	if err := printLocalBoard(out, game); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "q", "quit":
			return nil
		case "h", "help", "?":
			fmt.Fprintln(out, playHelp)
			continue
		case "r", "reset":
			game.Reset()
		case "b", "bot":
			if !game.IsPlaying() {
				fmt.Fprintln(out, "The bot has no move to make")
				continue
			}
			move, ok := helper.ChooseMove(game.View())
			if !ok {
				fmt.Fprintln(out, "The bot has no move to make")
				continue
			}
			fmt.Fprintf(out, "Bot: %s %s\n", move.Kind, move.Position)
			applyMove(game, move.Kind, move.Position)
		case "s", "step", "f", "flag":
			if err := playMove(game, fields); err != nil {
				fmt.Fprintf(out, "%s\n", err)
				continue
			}
		default:
			fmt.Fprintf(out, "Unknown command %q, type h for help\n", fields[0])
			continue
		}

		if err := printLocalBoard(out, game); err != nil {
			return err
		}
		if !game.IsPlaying() {
			fmt.Fprintln(out, "Game over: r to play again, q to quit")
		}
	}
}

func playMove(game *engine.Game, fields []string) error {
	if len(fields) != 3 {
		return fmt.Errorf("usage: %s <x> <y>", fields[0])
	}

	pos, err := parsePosition(fields[1], fields[2])
	if err != nil {
		return err
	}

	tile := game.Tile(pos)
	if tile == nil {
		return fmt.Errorf("no tile at %s", pos)
	}

	kind := model.MoveFlag
	if strings.HasPrefix(fields[0], "s") {
		kind = model.MoveStep
	}
	applyMove(game, kind, pos)
	return nil
}

func applyMove(game *engine.Game, kind model.MoveKind, pos model.Position) {
	tile := game.Tile(pos)
	if kind == model.MoveStep {
		tile.StepOn()
	} else {
		tile.PutFlag()
	}
	game.Settle()
	game.YouWin()
}

func printLocalBoard(out io.Writer, game *engine.Game) error {
	board, err := RenderBoard(game.View())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, board)
	return nil
}
